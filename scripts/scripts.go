// Package scripts embeds the stock edit scripts shipped with the CLI.
package scripts

import "embed"

//go:embed *.risor
var FS embed.FS
