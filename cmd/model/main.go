package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"project_finance/pkg/core/model"
	"project_finance/pkg/core/report"
	"project_finance/pkg/core/scenario"
)

func main() {
	godotenv.Load()

	scenarioPath := "config/base_case.hjson"
	if len(os.Args) > 1 {
		scenarioPath = os.Args[1]
	}

	params, err := scenario.Load(scenarioPath)
	if err != nil {
		log.Fatalf("Error: failed to load scenario %s: %v", scenarioPath, err)
	}

	results, err := model.Compute(params)
	if err != nil {
		log.Fatalf("Error: compute failed: %v", err)
	}

	fmt.Print(report.Text(params, results))
	fmt.Println()
	fmt.Print(report.DebtScheduleText(params, results))
	fmt.Println()
	fmt.Print(report.EquityText(results))
}
