package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"implied-pe/models"
)

// ErrNoPeerTable is returned when no table with a peer header is found
var ErrNoPeerTable = errors.New("no peer table found")

// header aliases, matched case-insensitively
var (
	idHeaders     = []string{"ticker", "id", "symbol", "company", "name"}
	priceHeaders  = []string{"price", "current_price", "current price"}
	epsHeaders    = []string{"eps", "current_eps", "current eps"}
	growthHeaders = []string{"growth_rate", "growth", "growth rate", "expected growth"}
)

// PeerLoader reads peer sets from CSV, XLSX and saved HTML files
type PeerLoader struct {
	validator *Validator
	logger    *zap.Logger
}

// NewPeerLoader creates a new peer loader
func NewPeerLoader(logger *zap.Logger) *PeerLoader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PeerLoader{
		validator: NewValidator(),
		logger:    logger.With(zap.String("component", "peer_loader")),
	}
}

// LoadFile loads a peer set, choosing the reader by file extension.
// sheet is only used for workbooks; empty selects the first sheet.
func (pl *PeerLoader) LoadFile(path, sheet string) (models.PeerSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return pl.LoadXLSX(path, sheet)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open peer file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return pl.LoadHTML(file)
	default:
		return pl.LoadCSV(file)
	}
}

// LoadCSV loads peers from CSV. The first record must be a header row.
func (pl *PeerLoader) LoadCSV(r io.Reader) (models.PeerSet, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return pl.LoadRecords(records)
}

// LoadXLSX loads peers from a workbook sheet
func (pl *PeerLoader) LoadXLSX(path, sheet string) (models.PeerSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoPeerTable
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	pl.logger.Debug("read workbook sheet", zap.String("sheet", sheet), zap.Int("rows", len(rows)))
	return pl.LoadRecords(rows)
}

// LoadHTML loads peers from the first HTML table whose header row names the
// identifier, price and EPS columns
func (pl *PeerLoader) LoadHTML(r io.Reader) (models.PeerSet, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var rows [][]string
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		var candidate [][]string
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			var cells []string
			row.Find("th, td").Each(func(k int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) > 0 {
				candidate = append(candidate, cells)
			}
		})
		if len(candidate) > 0 {
			if _, err := mapHeader(candidate[0]); err == nil {
				rows = candidate
				return false
			}
		}
		return true
	})

	if rows == nil {
		return nil, ErrNoPeerTable
	}
	return pl.LoadRecords(rows)
}

type columns struct {
	id, price, eps, growth int
}

func mapHeader(header []string) (columns, error) {
	cols := columns{id: -1, price: -1, eps: -1, growth: -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch {
		case cols.id < 0 && contains(idHeaders, name):
			cols.id = i
		case cols.price < 0 && contains(priceHeaders, name):
			cols.price = i
		case cols.eps < 0 && contains(epsHeaders, name):
			cols.eps = i
		case cols.growth < 0 && contains(growthHeaders, name):
			cols.growth = i
		}
	}

	var missing []string
	if cols.id < 0 {
		missing = append(missing, "ticker")
	}
	if cols.price < 0 {
		missing = append(missing, "price")
	}
	if cols.eps < 0 {
		missing = append(missing, "eps")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// LoadRecords converts a header row plus data rows into a peer set. Every
// row is checked and all problems are reported together.
func (pl *PeerLoader) LoadRecords(rows [][]string) (models.PeerSet, error) {
	if len(rows) == 0 {
		return nil, ErrNoPeerTable
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var (
		peers models.PeerSet
		errs  error
		seen  = make(map[string]int)
	)
	for i, record := range rows[1:] {
		line := i + 2
		if isBlank(record) {
			continue
		}

		peer, err := parsePeer(record, cols)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", line, err))
			continue
		}
		if err := pl.validator.Struct(peer); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", line, err))
			continue
		}
		if first, dup := seen[peer.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %q already defined on row %d", line, peer.ID, first))
			continue
		}
		seen[peer.ID] = line
		peers = append(peers, peer)
	}

	if errs != nil {
		return nil, errs
	}
	pl.logger.Debug("loaded peer set", zap.Int("peers", len(peers)))
	return peers, nil
}

func parsePeer(record []string, cols columns) (models.Peer, error) {
	peer := models.Peer{ID: strings.TrimSpace(cell(record, cols.id))}

	var err error
	if peer.Price, err = parseFloatValue(cell(record, cols.price)); err != nil {
		return peer, fmt.Errorf("price: %w", err)
	}
	if peer.EPS, err = parseFloatValue(cell(record, cols.eps)); err != nil {
		return peer, fmt.Errorf("eps: %w", err)
	}
	if cols.growth >= 0 {
		if peer.GrowthRate, err = parseGrowthValue(cell(record, cols.growth)); err != nil {
			return peer, fmt.Errorf("growth rate: %w", err)
		}
	}
	return peer, nil
}

// parseFloatValue parses a numeric cell, tolerating currency symbols,
// thousands separators and accounting-style negatives
func parseFloatValue(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	negative := strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")")
	cleaned = strings.NewReplacer("$", "", ",", "", "(", "", ")", "", " ", "").Replace(cleaned)

	switch strings.ToLower(cleaned) {
	case "", "n/a", "na", "--", "-":
		return 0, fmt.Errorf("no valid value in %q", value)
	}

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("%q is not a finite number", value)
	}
	if negative {
		parsed = -parsed
	}
	return parsed, nil
}

// parseGrowthValue parses a growth rate. Values written with a percent sign
// are converted to decimals; bare numbers are taken as decimals already.
func parseGrowthValue(value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	parsed, err := parseFloatValue(strings.ReplaceAll(value, "%", ""))
	if err != nil {
		return 0, err
	}
	if strings.Contains(value, "%") {
		parsed /= 100
	}
	return parsed, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
