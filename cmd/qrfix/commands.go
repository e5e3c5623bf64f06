package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strconv"

	"github.com/ericlevine/qrfix"
	"github.com/ericlevine/qrfix/qrcode"
	"github.com/ericlevine/qrfix/qrcode/decoder"
	"github.com/ericlevine/qrfix/qrcode/encoder"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixTryAll     bool
	fixParallel   bool
	fixInterleave string
	fixCharset    string
	fixOut        string
	fixPNG        string

	encodeVersion    int
	encodeECLevel    string
	encodeMask       int
	encodeInterleave string
	encodeCharset    string
	encodeOut        string
	encodePNG        string

	imageOut string
	imagePNG string

	renderScale int
)

var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Repair a matrix and print its decoded payload",
	Long: `Repairs the function patterns of the matrix in <file> ("-" reads standard
input), tries every format that agrees with the surviving format modules
and prints the first payload that decodes.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

var genCmd = &cobra.Command{
	Use:   "gen <version>",
	Short: "Print a blank all-unknown matrix of the given version",
	Args:  cobra.ExactArgs(1),
	RunE:  runGen,
}

var encodeCmd = &cobra.Command{
	Use:   "encode <text>",
	Short: "Build a clean matrix carrying <text>",
	Long: `Encodes <text> as one alphanumeric or byte segment and prints the matrix.
The layout and character set default to the fix section of the
configuration so that "qrfix fix" reads the result back.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Describe the matrix text format",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), qrfix.FormatHelp)
	},
}

var imageCmd = &cobra.Command{
	Use:   "image <image> <N>",
	Short: "Sample a margin-free QR image into an N x N matrix",
	Long: `Divides a PNG, JPEG or GIF image without quiet zone into an N x N grid and
classifies every block as black, white or unknown by thresholding its median
(or average) luminance.`,
	Args: cobra.ExactArgs(2),
	RunE: runImage,
}

var renderCmd = &cobra.Command{
	Use:   "render <file> <out.png>",
	Short: "Render a matrix as a PNG image",
	Args:  cobra.ExactArgs(2),
	RunE:  runRender,
}

func initFixCmd() {
	fixCmd.Flags().BoolVar(&fixTryAll, "try-all", false, "try every orientation with a missing finder pattern")
	fixCmd.Flags().BoolVar(&fixParallel, "parallel", false, "decode format candidates concurrently")
	fixCmd.Flags().StringVar(&fixInterleave, "interleave", "", "codeword layout: paired or blocks")
	fixCmd.Flags().StringVar(&fixCharset, "charset", "", "character set of byte segments")
	fixCmd.Flags().StringVarP(&fixOut, "out", "o", "", "write the repaired matrix to this file")
	fixCmd.Flags().StringVar(&fixPNG, "png", "", "render the repaired matrix to this PNG file")
}

func initEncodeCmd() {
	encodeCmd.Flags().IntVar(&encodeVersion, "version", 0, "symbol version (default smallest that fits)")
	encodeCmd.Flags().StringVar(&encodeECLevel, "ec", "M", "error correction level: L, M, Q or H")
	encodeCmd.Flags().IntVar(&encodeMask, "mask", encoder.AutoMask, "data mask 0-7 (default lowest penalty)")
	encodeCmd.Flags().StringVar(&encodeInterleave, "interleave", "", "codeword layout: paired or blocks")
	encodeCmd.Flags().StringVar(&encodeCharset, "charset", "", "character set of byte segments")
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "write the matrix to this file instead of standard output")
	encodeCmd.Flags().StringVar(&encodePNG, "png", "", "render the matrix to this PNG file")
}

func initImageCmd() {
	imageCmd.Flags().StringVarP(&imageOut, "out", "o", "", "write the matrix to this file instead of standard output")
	imageCmd.Flags().StringVar(&imagePNG, "png", "", "render the sampled matrix to this PNG file")
}

func initRenderCmd() {
	renderCmd.Flags().IntVar(&renderScale, "scale", 0, "pixels per module (default from config)")
}

func readMatrix(cmd *cobra.Command, path string) (*qrfix.Matrix, error) {
	if path == "-" {
		return qrfix.ParseMatrix(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := qrfix.ParseMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func writeMatrix(path string, m *qrfix.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := m.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePNG(path string, m *qrfix.Matrix, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, qrfix.MatrixToImage(m, scale)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runFix(cmd *cobra.Command, args []string) error {
	c := *currentConfig()
	flags := cmd.Flags()
	if flags.Changed("try-all") {
		c.Fix.TryAllOrientations = fixTryAll
	}
	if flags.Changed("parallel") {
		c.Fix.Parallel = fixParallel
	}
	if flags.Changed("interleave") {
		c.Fix.Interleave = fixInterleave
	}
	if flags.Changed("charset") {
		c.Fix.CharacterSet = fixCharset
	}
	if err := c.Validate(); err != nil {
		return err
	}
	opts, err := c.FixOptions(currentLogger().Named("fix"))
	if err != nil {
		return err
	}

	m, err := readMatrix(cmd, args[0])
	if err != nil {
		return err
	}
	fixed, err := qrcode.NewFixer(opts).Fix(m)
	if err != nil {
		if qrcode.IsUnsupported(err) {
			return fmt.Errorf("%w (numeric and kanji segments are not supported)", err)
		}
		return err
	}

	currentLogger().Info("matrix decoded",
		zap.String("file", args[0]),
		zap.String("ec_level", fixed.Result.ECLevel),
		zap.Int("data_mask", fixed.Result.DataMask),
		zap.Int("quarter_turns", fixed.Result.QuarterTurns),
		zap.Int("attempts", fixed.Result.Attempts))

	if fixOut != "" {
		if err := writeMatrix(fixOut, fixed.Matrix); err != nil {
			return err
		}
	}
	if fixPNG != "" {
		if err := writePNG(fixPNG, fixed.Matrix, c.Render.Scale); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), fixed.Result.Text)
	return nil
}

func runGen(cmd *cobra.Command, args []string) error {
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	m, err := qrfix.NewMatrixForVersion(version)
	if err != nil {
		return err
	}
	_, err = m.WriteTo(cmd.OutOrStdout())
	return err
}

func runEncode(cmd *cobra.Command, args []string) error {
	c := *currentConfig()
	flags := cmd.Flags()
	if flags.Changed("interleave") {
		c.Fix.Interleave = encodeInterleave
	}
	if flags.Changed("charset") {
		c.Fix.CharacterSet = encodeCharset
	}
	opts, err := c.FixOptions(currentLogger())
	if err != nil {
		return err
	}
	ecLevel, ok := decoder.ECLevelForName(encodeECLevel)
	if !ok {
		return fmt.Errorf("invalid error correction level %q", encodeECLevel)
	}

	sym, err := encoder.Encode(args[0], encoder.Options{
		Version:      encodeVersion,
		ECLevel:      ecLevel,
		Mask:         encodeMask,
		Layout:       opts.Interleave,
		CharacterSet: opts.CharacterSet,
	})
	if err != nil {
		return err
	}
	currentLogger().Debug("encoded",
		zap.Int("version", sym.Version.Number),
		zap.Stringer("format", sym.Format),
		zap.Stringer("mode", sym.Mode),
		zap.Stringer("interleave", opts.Interleave))

	if encodePNG != "" {
		if err := writePNG(encodePNG, sym.Matrix, c.Render.Scale); err != nil {
			return err
		}
	}
	if encodeOut != "" {
		return writeMatrix(encodeOut, sym.Matrix)
	}
	_, err = sym.Matrix.WriteTo(cmd.OutOrStdout())
	return err
}

func runImage(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid matrix size %q: %w", args[1], err)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	currentLogger().Debug("image loaded",
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))

	c := currentConfig()
	sampler, err := c.Sampler(qrfix.NewImageLuminanceSource(img))
	if err != nil {
		return err
	}
	m, err := sampler.Sample(n)
	if err != nil {
		return err
	}

	if imagePNG != "" {
		if err := writePNG(imagePNG, m, c.Render.Scale); err != nil {
			return err
		}
	}
	if imageOut != "" {
		return writeMatrix(imageOut, m)
	}
	_, err = m.WriteTo(cmd.OutOrStdout())
	return err
}

func runRender(cmd *cobra.Command, args []string) error {
	m, err := readMatrix(cmd, args[0])
	if err != nil {
		return err
	}
	scale := currentConfig().Render.Scale
	if renderScale > 0 {
		scale = renderScale
	}
	return writePNG(args[1], m, scale)
}
