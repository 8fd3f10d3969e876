package main

import (
	"github.com/alecthomas/kong"

	"github.com/allanpk716/docx_standards/internal/cmd"
)

func main() {
	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name(cmd.AppName),
		kong.Description("按写作规范校正 DOCX 文档并生成可读性报告"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
