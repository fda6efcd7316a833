package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/ui"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/workflows"
)

var (
	decodePassword string
	decodeOutput   string
	decodeMethod   string
)

func init() {
	decodeCmd.Flags().StringVarP(&decodePassword, "password", "p", "", "password for protected files (looked up in run manifests when omitted)")
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "write decoded content to this path instead of stdout")
	decodeCmd.Flags().StringVar(&decodeMethod, "method", "", "force an encoding method (e.g. base64, symmetric-encrypted, password-zip-single)")
}

func resetDecodeState() {
	decodePassword = ""
	decodeOutput = ""
	decodeMethod = ""
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Recover the original content of a chaff file",
	Long: `Reverses the encoding applied to a generated file.

The method is taken from the run manifest, or detected from the file name
and content. Passwords for protected files are looked up in the run
manifests; pass --password to supply one, or enter it when prompted.

Examples:
  chaff decode ~/.chaff/report_final.pdf.b64 -o report.pdf
  chaff decode data.xlsx.zip --password Marigold42
  cat notes.txt.b64 | chaff decode - --method base64`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decode command")
		path := args[0]

		opts := workflows.DecodeOptions{
			Path:       path,
			Password:   decodePassword,
			OutputPath: decodeOutput,
		}
		if path == "-" {
			data, err := utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read encoded content: %v", err)
			}
			opts.Content = data
		}
		if decodeMethod != "" {
			method, err := encoding.ParseMethod(decodeMethod)
			if err != nil {
				fmt.Println(ui.Error.Sprint("✗") + " Unknown encoding method " + ui.Highlight.Sprint(decodeMethod))
				return nil
			}
			opts.Method = &method
		}

		result, err := workflows.Decode(cmd.Context(), opts)
		if errors.Is(err, cerrors.ErrPasswordRequired) && path != "-" && utils.IsTerminal() {
			password, perr := utils.ReadPassword("Password for " + path + ": ")
			if perr != nil {
				return Logger.ErrorfAndReturn("Failed to read password: %v", perr)
			}
			opts.Password = password
			result, err = workflows.Decode(cmd.Context(), opts)
		}
		if err != nil {
			Logger.Errorf("Decode failed: %v", err)
			fmt.Println(formatDecodeError(path, err))
			return nil
		}

		Logger.Infof("Decoded %s with %s (%d bytes)", path, result.Method, len(result.Content))
		if result.OutputPath == "" {
			if _, err := os.Stdout.Write(result.Content); err != nil {
				return Logger.ErrorfAndReturn("Failed to write decoded content: %v", err)
			}
			return nil
		}

		fmt.Println(ui.Success.Sprint("✓") + " Decoded " + ui.Path.Sprint(path) + " " + ui.Method.Sprint(result.Method.String()))
		fmt.Println(ui.Info.Sprint("→") + " Written to " + ui.Path.Sprint(result.OutputPath) +
			" " + ui.Muted.Sprintf("original name %s", result.SuggestedName))
		if result.PasswordSource == workflows.PasswordManifest {
			fmt.Println(ui.Info.Sprint("→") + " Password taken from the run manifest")
		}
		return nil
	},
}

func formatDecodeError(path string, err error) string {
	switch {
	case errors.Is(err, cerrors.ErrFileNotFound):
		return ui.Error.Sprint("✗") + " File " + ui.Path.Sprint(path) + " does not exist"
	case errors.Is(err, cerrors.ErrPasswordRequired):
		return ui.Error.Sprint("✗") + " " + ui.Path.Sprint(path) + " is password protected\n" +
			ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--password") + " or look for the hint in the other generated files"
	default:
		return ui.Error.Sprint("✗") + " Failed to decode " + ui.Path.Sprint(path) + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	}
}
