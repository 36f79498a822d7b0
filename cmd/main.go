package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quiz-extractor/internal/config"
	"quiz-extractor/internal/constants"
	"quiz-extractor/internal/extract"
	"quiz-extractor/internal/models"
	"quiz-extractor/internal/utils"

	"github.com/fatih/color"
)

var (
	infoLabel    = color.New(color.FgCyan).Sprint("[INFO] ")
	successLabel = color.New(color.FgGreen).Sprint("[OK] ")
	warnLabel    = color.New(color.FgYellow).Sprint("[WARN] ")
	errorLabel   = color.New(color.FgRed).Sprint("[ERROR] ")
	titleStyle   = color.New(color.Bold, color.FgCyan)
	mutedStyle   = color.New(color.FgHiBlack)
)

var errUsage = errors.New("usage")

type options struct {
	debug bool
	quiet bool
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			printErrorf("Unexpected error: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		printErrorf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, opts, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	log := utils.NewLogger(opts.debug)
	printBanner()

	printInfof("Extracting questions from %s...\n", cfg.Input)
	startTime := utils.StartTime()

	extractor := extract.New(cfg, log)
	if !opts.quiet {
		extractor.WithProgress(os.Stderr)
	}
	result, err := extractor.ExtractFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	outputPath := cfg.Output
	if outputPath == "" {
		outputPath = utils.DefaultOutputPath(cfg.Input, constants.OutputSuffix, cfg.Format)
	}
	saved, err := utils.WriteData(result.Set, outputPath, cfg.Format, documentTitle(cfg.Input))
	if err != nil {
		return fmt.Errorf("failed writing output: %w", err)
	}

	printSuccessf("Extracted %d question(s) in %s.\n", result.Summary.Total, utils.TimeSince(startTime))
	printSuccessf("Successfully saved output: %s\n", saved)
	printSummary(result.Summary)
	return nil
}

// parseArgs layers explicitly set flags over the config file, which is
// itself layered over the defaults.
func parseArgs(args []string, stderr io.Writer) (config.Config, options, error) {
	fs := flag.NewFlagSet("quiz-extractor", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to a YAML config file")
	input := fs.String("input", "", "Path to the saved HTML exam page")
	output := fs.String("output", "", "Output path (defaults to <input>_questions.<ext>)")
	format := fs.String("format", constants.DefaultFormat, "Output format: json, md, html or pdf")
	minID := fs.Int("min-id", constants.MinQuestionID, "Lowest valid question number")
	maxID := fs.Int("max-id", constants.MaxQuestionID, "Highest valid question number")
	assetMarker := fs.String("asset-marker", constants.AssetFolderMarker, "Folder token image paths are rebased onto")
	debug := fs.Bool("debug", false, "Enable debug logs")
	quiet := fs.Bool("quiet", false, "Hide the progress bar")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return config.Config{}, options{}, errUsage
		}
		return config.Config{}, options{}, fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, options{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output = *output
		case "format":
			cfg.Format = strings.ToLower(*format)
		case "min-id":
			cfg.MinQuestionID = *minID
		case "max-id":
			cfg.MaxQuestionID = *maxID
		case "asset-marker":
			cfg.AssetFolderMarker = *assetMarker
		}
	})
	if cfg.Input == "" && fs.NArg() > 0 {
		cfg.Input = fs.Arg(0)
	}

	if cfg.Input == "" {
		fmt.Fprintln(stderr, "Usage: quiz-extractor -input <page.html> [-output <file>] [-format json|md|html|pdf] [-config <file.yaml>]")
		return config.Config{}, options{}, errUsage
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, options{}, err
	}

	return cfg, options{debug: *debug, quiet: *quiet}, nil
}

func documentTitle(inputPath string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if base == "" || base == "." {
		return "Questions"
	}
	return base + " Questions"
}

func printSummary(s models.Summary) {
	printSection("Summary")
	if s.Total == 0 {
		printWarnf("No questions were found in the document.\n")
		return
	}

	fmt.Printf(" Question IDs range: %d to %d\n", s.MinID, s.MaxID)
	fmt.Printf(" Single choice questions: %d\n", s.Single)
	fmt.Printf(" Multiple choice questions: %d\n", s.Multiple)
	fmt.Printf(" Questions with images: %d\n", s.WithImage)
	fmt.Printf(" Questions with explanations: %d\n", s.WithExplanation)

	if len(s.MissingIDs) == 0 {
		printSuccessf("All questions %d-%d were found!\n", s.ExpectedRangeMin, s.ExpectedRangeMax)
	} else {
		printWarnf("Missing %d question ID(s): %s\n", len(s.MissingIDs), utils.FormatIDs(s.MissingIDs))
	}
	if len(s.DuplicateIDs) > 0 {
		printWarnf("Duplicate anchors (first kept): %s\n", utils.FormatIDs(s.DuplicateIDs))
	}
	if len(s.WithoutChoices) > 0 {
		printWarnf("No choice list: %s\n", utils.FormatIDs(s.WithoutChoices))
	}
	if len(s.WithoutCorrect) > 0 {
		printWarnf("No correct answer marked: %s\n", utils.FormatIDs(s.WithoutCorrect))
	}
	if len(s.TypeMismatchIDs) > 0 {
		printWarnf("Answer count disagrees with type: %s\n", utils.FormatIDs(s.TypeMismatchIDs))
	}
}

func printBanner() {
	fmt.Println(mutedStyle.Sprint(strings.Repeat("=", 64)))
	fmt.Println(titleStyle.Sprint(" Quiz Extractor - Exam Page Question Extractor"))
	fmt.Println(mutedStyle.Sprint(strings.Repeat("=", 64)))
	fmt.Println()
}

func printSection(title string) {
	fmt.Println()
	fmt.Println(mutedStyle.Sprint(strings.Repeat("-", 64)))
	fmt.Println(titleStyle.Sprint(" " + title))
	fmt.Println(mutedStyle.Sprint(strings.Repeat("-", 64)))
}

func printInfof(format string, args ...any) {
	fmt.Printf(infoLabel+format, args...)
}

func printSuccessf(format string, args ...any) {
	fmt.Printf(successLabel+format, args...)
}

func printWarnf(format string, args ...any) {
	fmt.Printf(warnLabel+format, args...)
}

func printErrorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, errorLabel+format, args...)
}
