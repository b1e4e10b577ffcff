package valuation

import (
	"fmt"

	"implied-pe/models"
)

func ExampleImpliedPE() {
	pe, err := ImpliedPE(100, 5, 0.10, 0.30)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Implied Forward P/E: %.2fx\n", pe)
	// Output: Implied Forward P/E: 18.18x
}

func ExampleIndustryImpliedPE() {
	peers := models.PeerSet{
		{ID: "Company A", Price: 100, EPS: 5, GrowthRate: 0.10},
		{ID: "Company B", Price: 80, EPS: 4, GrowthRate: 0.08},
		{ID: "Company C", Price: 120, EPS: 6, GrowthRate: 0.12},
	}

	industry, err := IndustryImpliedPE(peers)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, m := range industry.Individual {
		fmt.Printf("%s P/E: %.2fx\n", m.ID, m.ImpliedPE)
	}
	fmt.Printf("Median Industry P/E: %.2fx\n", industry.Median)
	// Output:
	// Company A P/E: 18.18x
	// Company B P/E: 18.52x
	// Company C P/E: 17.86x
	// Median Industry P/E: 18.18x
}

func ExampleSensitivityGrid() {
	grid, err := SensitivityGrid(100, 5, []float64{0.05, 0.10}, []float64{0.20, 0.30})
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, label := range grid.RowLabels {
		fmt.Printf("%s %.2f %.2f\n", label, grid.At(i, 0), grid.At(i, 1))
	}
	// Output:
	// 5.0% 19.05 19.05
	// 10.0% 18.18 18.18
}
