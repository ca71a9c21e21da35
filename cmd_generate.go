package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"thumbforge/common"
	"thumbforge/export"
	"thumbforge/icons"
	"thumbforge/thumbnail"
)

func newGenerateCmd(cfgPath *string) *cobra.Command {
	var (
		title      string
		background string
		iconTerms  []string
		iconFiles  []string
		out        string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single thumbnail",
		Long:  "Generate a thumbnail from a background photo and a title.\nMissing title or background switch the command to interactive prompts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}

			if title == "" || background == "" {
				title, background, iconTerms, out, format, err = promptForInput(title, background, format)
				if err != nil {
					return err
				}
			}

			if _, err := os.Stat(background); err != nil {
				return fmt.Errorf("background image not found: %s", background)
			}
			if !common.IsKnownFormat(format) {
				return fmt.Errorf("unknown format %q (known: %s)", format, strings.Join(common.KnownFormats(), ", "))
			}
			if out == "" {
				out = defaultOutputName(title)
			}
			out = common.NormalizeExtension(out, format)

			gen, err := thumbnail.NewGenerator(cfg, icons.NewSearcher(cfg))
			if err != nil {
				return err
			}
			pipeline := &export.Pipeline{Generator: gen, Output: cfg.Output}

			req := thumbnail.Request{
				Title:          title,
				BackgroundPath: background,
				IconPaths:      iconFiles,
				IconQueries:    iconTerms,
			}
			if err := pipeline.Generate(cmd.Context(), req, out); err != nil {
				return err
			}

			if info, err := os.Stat(out); err == nil {
				fmt.Printf("Thumbnail saved: %s (%.1f KB)\n", out, float64(info.Size())/1024)
			} else {
				fmt.Printf("Thumbnail saved: %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "thumbnail title")
	cmd.Flags().StringVarP(&background, "background", "b", "", "background image path")
	cmd.Flags().StringSliceVarP(&iconTerms, "icons", "i", nil, "icon search terms")
	cmd.Flags().StringSliceVar(&iconFiles, "icon-files", nil, "local icon image files")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output filename (extension corrected for the format)")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "output format: png, jpeg, webp, ora or ico")

	return cmd
}

// defaultOutputName mirrors the interactive default: the lowercased
// title, up to 20 characters.
func defaultOutputName(title string) string {
	name := strings.ToLower(strings.TrimSpace(title))
	name = strings.ReplaceAll(name, " ", "_")
	if len(name) > 20 {
		name = name[:20]
	}
	return "thumbnail_" + name
}

// promptForInput collects the generation parameters interactively.
func promptForInput(title, background, format string) (string, string, []string, string, string, error) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("THUMBFORGE - BLOG THUMBNAIL GENERATOR")
	fmt.Println(strings.Repeat("=", 60))

	reader := bufio.NewReader(os.Stdin)

	for title == "" {
		title = promptLine(reader, "Thumbnail title: ")
		if title == "" {
			fmt.Println("The title must not be empty")
		}
	}

	for {
		if background == "" {
			background = promptLine(reader, "Background image path: ")
		}
		if _, err := os.Stat(background); err == nil {
			break
		}
		fmt.Printf("File not found: %s\n", background)
		background = ""
	}

	fmt.Println("\nIcon search terms, comma separated (Enter to skip)")
	fmt.Println("Example: python, web, programming")
	var iconTerms []string
	for _, term := range strings.Split(promptLine(reader, "Icons: "), ",") {
		if term = strings.TrimSpace(term); term != "" {
			iconTerms = append(iconTerms, term)
		}
	}

	if format == "" || format == "png" {
		fmt.Println("\nOutput format:")
		fmt.Println("  1. PNG (flat image)")
		fmt.Println("  2. ORA (layered, editable in GIMP/Krita)")
		for {
			switch promptLine(reader, "Select format (1 or 2): ") {
			case "1", "":
				format = "png"
			case "2":
				format = "ora"
			default:
				fmt.Println("Select 1 or 2")
				continue
			}
			break
		}
	}

	defaultName := defaultOutputName(title)
	out := promptLine(reader, fmt.Sprintf("Output filename [%s]: ", defaultName))
	if out == "" {
		out = defaultName
	}
	out = common.NormalizeExtension(out, format)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Printf("Title:      %s\n", title)
	fmt.Printf("Background: %s\n", background)
	if len(iconTerms) > 0 {
		fmt.Printf("Icons:      %s\n", strings.Join(iconTerms, ", "))
	} else {
		fmt.Println("Icons:      none")
	}
	fmt.Printf("Output:     %s (%s)\n", out, strings.ToUpper(format))
	fmt.Println(strings.Repeat("=", 60))

	confirm := strings.ToLower(promptLine(reader, "Continue? (Y/n): "))
	if confirm == "n" || confirm == "no" {
		return "", "", nil, "", "", fmt.Errorf("cancelled")
	}

	return title, background, iconTerms, out, format, nil
}

func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
