package config_test

import (
	"fmt"

	"github.com/wplohrmann/sumo/pkg/config"
)

func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("load config: %v\n", err)
		return
	}

	fmt.Printf("env:        %s\n", cfg.Env)
	fmt.Printf("api:        %s\n", cfg.SumoAPI.BaseURL)
	fmt.Printf("split date: %s\n", cfg.Eval.SplitDate)
	fmt.Printf("k values:   %v\n", cfg.Eval.KValues)
}
