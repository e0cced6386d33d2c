package main

import (
	"fmt"
	"time"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/calendar"
	"github.com/trezcool/classbook/core/report"
	downloadsvc "github.com/trezcool/classbook/services/download"
)

var dotSymbols = map[calendar.Color]string{
	calendar.ColorNone:           ".",
	calendar.ColorAllComplete:    "o",
	calendar.ColorSomeIncomplete: "x",
}

// calendar prints one line per day: `2024-03-04 x`.
func (cli *commandLine) calendar(year, month int, mode string) error {
	days, err := cli.class.Month(year, time.Month(month), calendar.Mode(mode))
	if err != nil {
		return err
	}
	for _, d := range days {
		fmt.Fprintf(cli.out, "%s %s\n", d.Date, dotSymbols[d.Color])
	}
	return nil
}

func (cli *commandLine) export(format, dir string) error {
	f := report.Format(format)
	if !f.Valid() {
		return core.NewArgumentError("invalid report format %q", format)
	}
	filename, err := cli.class.DownloadReport(downloadsvc.NewDirService(dir, cli.logger), f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "saved %s\n", filename)
	return nil
}
