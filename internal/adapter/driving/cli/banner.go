package cli

import (
	"fmt"
	"io"

	"github.com/diillson/aws-which-region/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(w io.Writer) {
	banner := `
 __        ___     _      _       ____            _             
 \ \      / / |__ (_) ___| |__   |  _ \ ___  __ _(_) ___  _ __  
  \ \ /\ / /| '_ \| |/ __| '_ \  | |_) / _ \/ _` + "`" + ` | |/ _ \| '_ \ 
   \ V  V / | | | | | (__| | | | |  _ <  __/ (_| | | (_) | | | |
    \_/\_/  |_| |_|_|\___|_| |_| |_| \_\___|\__, |_|\___/|_| |_|
                                            |___/               
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(w, red(banner))
	fmt.Fprintln(w, blue(fmt.Sprintf("AWS Which Region CLI (v%s)", version.FormatVersion())))
}
