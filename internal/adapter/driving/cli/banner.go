package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/supply-kpi-dashboard-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
         /$$   /$$ /$$$$$$$  /$$$$$$       /$$$$$$$                      /$$       
        | $$  /$$/| $$__  $$|_  $$_/      | $$__  $$                    | $$       
        | $$ /$$/ | $$  \ $$  | $$        | $$  \ $$  /$$$$$$   /$$$$$$$| $$$$$$$ 
        | $$$$$/  | $$$$$$$/  | $$        | $$  | $$ |____  $$ /$$_____/| $$__  $$
        | $$  $$  | $$____/   | $$        | $$  | $$  /$$$$$$$|  $$$$$$ | $$  \ $$
        | $$\  $$ | $$        | $$        | $$  | $$ /$$__  $$ \____  $$| $$  | $$
        | $$ \  $$| $$       /$$$$$$      | $$$$$$$/|  $$$$$$$ /$$$$$$$/| $$  | $$
        |__/  \__/|__/      |______/      |_______/  \_______/|_______/ |__/  |__/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("Supply KPI Dashboard CLI (v%s)", version.FormatVersion())))
}
