package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"clipshelf/internal/application/orchestrators"
)

func (a *app) addCommand() *cobra.Command {
	var (
		category string
		encrypt  bool
	)
	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Capture text into clipboard history",
		Example: `
  # Capture a link; the category is detected
  clipshelf add https://go.dev/doc

  # Capture from stdin as code
  cat main.go | clipshelf add --category code

  # Capture an encrypted secret
  clipshelf add --encrypt "correct horse battery staple"
  `,
		Annotations: usesStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = strings.TrimSuffix(string(data), "\n")
			}

			input := orchestrators.CaptureItemInput{Content: content, Encrypt: encrypt}
			if category != "" {
				c, err := parseCategory(category)
				if err != nil {
					return err
				}
				input.Category = &c
			}

			deps := orchestrators.CaptureItemDeps{Writer: a.ctrl}
			if encrypt {
				s, err := a.getSealer(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				deps.Sealer = s
			}

			it, err := orchestrators.ExecuteCaptureItem(cmd.Context(), input, deps)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), it.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or code (detected when omitted)")
	cmd.Flags().BoolVarP(&encrypt, "encrypt", "e", false, "seal the content under a passphrase")
	return cmd
}
