package main

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/filmtools/noritsu-cleanup/pkg/capture"
	"github.com/filmtools/noritsu-cleanup/pkg/cleanup"
	"github.com/filmtools/noritsu-cleanup/pkg/exiftool"
	"github.com/filmtools/noritsu-cleanup/pkg/rollname"
	"github.com/filmtools/noritsu-cleanup/pkg/scan"
)

const version = "0.1.0"

type options struct {
	verbose bool
	dryRun  bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "noritsu-cleanup",
		Short:   "A CLI tool to sanitize Noritsu film scan exports",
		Long:    "Noritsu Cleanup repairs EZController scan exports: it writes synthetic EXIF capture times that preserve scan order, deletes stray sidecar files, and renames images into a compact R<roll>F<frame> scheme.",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Noritsu Cleanup CLI")
			cmd.Printf("Version: %s\n", version)
			if opts.verbose {
				cmd.Println("Verbose mode: enabled")
			}
			if opts.dryRun {
				cmd.Println("Dry run mode: enabled")
			}
			cmd.Println("")
			cmd.Println("Use --help to see available commands and options")
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "perform a dry run without making changes")

	rootCmd.AddCommand(newCleanCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newInspectCmd(opts))

	return rootCmd
}

func newCleanCmd(opts *options) *cobra.Command {
	var useFrameNumbers bool
	var rollPadding int
	var keepSidecars bool

	cleanCmd := &cobra.Command{
		Use:   "clean [directory]",
		Short: "Run the cleanup pipeline over scan directories",
		Long:  "Run the three cleanup passes (capture timestamps, sidecar removal, renaming) over every roll directory found under the given directory. Defaults to the current working directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := targetDir(args)
			if err != nil {
				return err
			}

			cleanOpts := cleanup.DefaultOptions()
			cleanOpts.UseFrameNumbers = useFrameNumbers
			cleanOpts.RollPadding = rollPadding
			cleanOpts.KeepSidecars = keepSidecars
			cleanOpts.DryRun = opts.dryRun

			if useFrameNumbers {
				cmd.PrintErrln("WARNING: scanner frame numbers can repeat; duplicated frames silently overwrite each other")
			}

			// exiftool must be present before any file is touched.
			var tagger cleanup.CaptureTagger
			if !opts.dryRun {
				tool, toolErr := exiftool.New()
				if toolErr != nil {
					return toolErr
				}
				defer tool.Close()
				tagger = tool
			}

			dirs, err := rollDirs(root)
			if err != nil {
				return err
			}

			for _, dir := range dirs {
				results, runErr := cleanup.Run(dir, tagger, cleanOpts)
				if runErr != nil {
					cmd.PrintErrf("skipping %s: %v\n", dir, runErr)
					continue
				}
				for _, r := range results {
					line := cleanup.Describe(r)
					if opts.dryRun {
						line = "[dry run] " + line
					}
					cmd.Println(line)
				}
			}

			return nil
		},
	}

	cleanCmd.Flags().BoolVar(&useFrameNumbers, "use-frame-numbers", false, "name frames after the scanner's frame numbers instead of numbering sequentially")
	cleanCmd.Flags().IntVar(&rollPadding, "roll-padding", 4, "zero padding width for the roll number")
	cleanCmd.Flags().BoolVar(&keepSidecars, "keep-sidecars", false, "keep Info_HD.txt and *.thm files")

	return cleanCmd
}

func newScanCmd(opts *options) *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "List roll directories and the images in them",
		Long:  "Scan a directory for EZController roll directories and print the images that would be processed, in processing order.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := targetDir(args)
			if err != nil {
				return err
			}

			dirs, err := rollDirs(root)
			if err != nil {
				return err
			}

			total := 0
			for _, dir := range dirs {
				records, listErr := scan.ListImages(os.DirFS(dir), ".", scan.DefaultOptions())
				if listErr != nil {
					cmd.PrintErrf("skipping %s: %v\n", dir, listErr)
					continue
				}
				for _, r := range records {
					cmd.Println(filepath.Join(dir, filepath.FromSlash(r.Path)))
				}
				total += len(records)
			}

			if opts.verbose {
				cmd.PrintErrf("found %d images in %d directories\n", total, len(dirs))
			}

			return nil
		},
	}

	return scanCmd
}

func newInspectCmd(opts *options) *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect [directory]",
		Short: "Show parsed roll/frame identifiers and embedded capture times",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := targetDir(args)
			if err != nil {
				return err
			}

			dirs, err := rollDirs(root)
			if err != nil {
				return err
			}

			for _, dir := range dirs {
				records, listErr := scan.ListImages(os.DirFS(dir), ".", scan.DefaultOptions())
				if listErr != nil {
					cmd.PrintErrf("skipping %s: %v\n", dir, listErr)
					continue
				}
				for _, r := range records {
					path := filepath.Join(dir, filepath.FromSlash(r.Path))
					cmd.Printf("%s  %s  %s\n", path, describeIdentifier(path), embeddedCaptureTime(path))
				}
			}

			return nil
		},
	}

	return inspectCmd
}

func describeIdentifier(path string) string {
	id, ok := rollname.Parse(filepath.Base(path))
	if !ok {
		return "roll=? frame=?"
	}
	s := fmt.Sprintf("roll=%d frame=%d", id.Roll, id.Frame)
	if id.FrameName != "" {
		s += " name=" + id.FrameName
	}
	return s
}

func embeddedCaptureTime(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "capture=?"
	}
	defer f.Close()

	tm, ok, err := capture.ReadCaptureTime(f)
	if err != nil || !ok {
		return "capture=-"
	}
	return "capture=" + tm.Format("2006:01:02 15:04:05")
}

// targetDir resolves the optional positional directory argument,
// defaulting to the current working directory.
func targetDir(args []string) (string, error) {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	return filepath.Abs(dir)
}

// rollDirs discovers the directories to process: root itself when
// named like an order number, plus all matching descendants. A root
// with no roll directories at all is treated as a flat directory of
// scans.
func rollDirs(root string) ([]string, error) {
	rels, err := scan.FindRollDirs(os.DirFS(root), ".")
	if err != nil {
		return nil, err
	}

	var dirs []string
	if scan.IsRollDir(filepath.Base(root)) {
		dirs = append(dirs, root)
	}
	for _, rel := range rels {
		if rel == "." {
			continue
		}
		dirs = append(dirs, filepath.Join(root, filepath.FromSlash(rel)))
	}

	if len(dirs) == 0 {
		dirs = []string{root}
	}
	return dirs, nil
}
