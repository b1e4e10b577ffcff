// Package valuation computes implied forward price/earnings multiples.
//
// Three operations build on each other:
//
//   - ImpliedPE divides the current price by EPS grown one period at the
//     expected growth rate.
//   - IndustryImpliedPE applies ImpliedPE to a peer set and aggregates the
//     multiples with a median.
//   - SensitivityGrid applies ImpliedPE over every growth rate and payout
//     ratio scenario pair.
//
// The package level functions use the literal formula, in which the payout
// ratio does not affect the result. A Calculator configured with
// models.FormulaRetention grows EPS by growthRate * (1 - payoutRatio) instead.
//
// Every operation is a pure function of its inputs. A zero forward EPS is
// reported as ErrDivisionByZero and a median over no peers as ErrEmptyPeerSet.
package valuation
