package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/minitools-mcp/internal/imaging"
	"github.com/ironsheep/minitools-mcp/internal/password"
	"github.com/ironsheep/minitools-mcp/internal/tools"
	"github.com/ironsheep/minitools-mcp/internal/units"
)

var colorPalette bool

var colorCmd = &cobra.Command{
	Use:   "color <input>",
	Short: "Parse a color and print its hex, RGB and HSL forms",
	Long: `Parse a color given as hex, rgb()/rgba() or hsl()/hsla() and print its
representations. The color is added to the color history.

Examples:
  minitools-mcp color "#4361ee"
  minitools-mcp color "hsl(210, 50%, 40%)" --palette`,
	Args: cobra.ExactArgs(1),
	RunE: runColor,
}

var convertCmd = &cobra.Command{
	Use:   "convert <value> <category> <from> <to>",
	Short: "Convert a value between units",
	Long: `Convert a value between two units of a category. Currency conversions
fetch exchange rates first.

Examples:
  minitools-mcp convert 100 temperature celsius fahrenheit
  minitools-mcp convert 20 currency USD EUR`,
	Args: cobra.ExactArgs(4),
	RunE: runConvert,
}

var compressFlags struct {
	quality   float64
	targetKB  float64
	format    string
	maxWidth  int
	maxHeight int
}

var compressCmd = &cobra.Command{
	Use:   "compress <input> <output>",
	Short: "Re-encode an image, optionally to a target size",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompress,
}

var analyzeTidy bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Print statistics for a text file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

var passwordFlags struct {
	length     int
	noSymbols  bool
	similar    bool
	pattern    string
	passphrase bool
	words      int
	separator  string
	noHistory  bool
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Generate a password or passphrase",
	Long: `Generate a random password, or a passphrase of dictionary words, and
print it with its strength. The password is added to the password history
unless --no-history is given.

Examples:
  minitools-mcp password --length 24 --no-symbols
  minitools-mcp password --passphrase --words 5 --separator .`,
	Args: cobra.NoArgs,
	RunE: runPassword,
}

func init() {
	colorCmd.Flags().BoolVar(&colorPalette, "palette", false, "Also print the ten-step lightness palette")

	compressCmd.Flags().Float64Var(&compressFlags.quality, "quality", 0, "Encoding quality in (0, 1] (default from config)")
	compressCmd.Flags().Float64Var(&compressFlags.targetKB, "target-kb", 0, "Target output size in KB; 0 forces fixed quality (default from config)")
	compressCmd.Flags().StringVar(&compressFlags.format, "format", "", "Output format: jpeg, png, gif, bmp, tiff or original")
	compressCmd.Flags().IntVar(&compressFlags.maxWidth, "max-width", 0, "Scale down to at most this width")
	compressCmd.Flags().IntVar(&compressFlags.maxHeight, "max-height", 0, "Scale down to at most this height")

	analyzeCmd.Flags().BoolVar(&analyzeTidy, "tidy", false, "Also print the tidied text")

	passwordCmd.Flags().IntVar(&passwordFlags.length, "length", password.DefaultLength, "Password length")
	passwordCmd.Flags().BoolVar(&passwordFlags.noSymbols, "no-symbols", false, "Leave out symbols")
	passwordCmd.Flags().BoolVar(&passwordFlags.similar, "exclude-similar", false, "Leave out look-alike characters")
	passwordCmd.Flags().StringVar(&passwordFlags.pattern, "pattern", "", "Build the password from a pattern such as Cvcc-####")
	passwordCmd.Flags().BoolVar(&passwordFlags.passphrase, "passphrase", false, "Generate a word passphrase")
	passwordCmd.Flags().IntVar(&passwordFlags.words, "words", password.DefaultWords, "Passphrase word count")
	passwordCmd.Flags().StringVar(&passwordFlags.separator, "separator", password.DefaultSeparator, "Passphrase word separator")
	passwordCmd.Flags().BoolVar(&passwordFlags.noHistory, "no-history", false, "Do not remember the password")
}

func runColor(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	store, err := openStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	colors := tools.NewColorTool(store, cfg.History.Limit)
	info, err := colors.Apply(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	logger.Debug("color parsed", zap.String("hex", info.Hex))

	if !colorPalette {
		return printJSON(cmd, info)
	}
	palette, err := colors.Palette(args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, map[string]interface{}{"color": info, "palette": palette})
}

func runConvert(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[0], err)
	}
	category, from, to := args[1], args[2], args[3]

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	store, err := openStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	var opts []units.Option
	if category == "currency" {
		rateCache := newRateCache(cfg.Currency, logger)
		if err := rateCache.Refresh(cmd.Context()); err != nil {
			logger.Warn("exchange rate refresh failed", zap.Error(err))
		}
		opts = append(opts, units.WithRates(rateCache))
	}

	converter := tools.NewConverterTool(units.New(opts...), store, cfg.History.Limit)
	conv, err := converter.Convert(cmd.Context(), value, category, from, to)
	if err != nil {
		return err
	}
	return printJSON(cmd, conv)
}

func runCompress(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	req := tools.CompressRequest{
		Path:      args[0],
		Quality:   compressFlags.quality,
		Format:    compressFlags.format,
		MaxWidth:  compressFlags.maxWidth,
		MaxHeight: compressFlags.maxHeight,
	}
	if cmd.Flags().Changed("target-kb") {
		req.TargetSizeKB = &compressFlags.targetKB
	}

	tool := tools.NewCompressTool(imaging.NewImageCache(), compressDefaults(cfg.Compress))
	out, err := tool.Compress(req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], out.Bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Debug("image compressed",
		zap.String("output", args[1]),
		zap.Float64("size_kb", out.SizeKB),
		zap.Int("attempts", out.Attempts))
	return printJSON(cmd, out)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	var text []byte
	if len(args) == 0 || args[0] == "-" {
		text, err = io.ReadAll(cmd.InOrStdin())
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	store, err := openStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	analysis, err := tools.NewTextTool(store, cfg.History.Limit, nil, nil).Analyze(cmd.Context(), string(text), analyzeTidy)
	if err != nil {
		return err
	}
	return printJSON(cmd, analysis)
}

func runPassword(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	store, err := openStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := password.DefaultOptions()
	opts.Length = passwordFlags.length
	opts.Symbols = !passwordFlags.noSymbols
	opts.ExcludeSimilar = passwordFlags.similar
	opts.Pattern = passwordFlags.pattern

	res, err := tools.NewPasswordTool(store, cfg.History.Limit, nil).Generate(cmd.Context(), tools.PasswordRequest{
		Options:    opts,
		Passphrase: passwordFlags.passphrase,
		Words:      passwordFlags.words,
		Separator:  &passwordFlags.separator,
		NoHistory:  passwordFlags.noHistory,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, res)
}
