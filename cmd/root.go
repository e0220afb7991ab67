// Package cmd wires the six archive operations (plus Verify) to a
// cobra command line. It is a thin collaborator: its only contract with
// the archive package is calling one operation with a target path and a
// list of member paths or names, then printing the outcome.
package cmd

import (
	"fmt"

	"github.com/sergev/haf/archive"
	"github.com/sergev/haf/config"
	"github.com/spf13/cobra"
)

// opts mirrors the plain configuration struct from the format's design
// notes: one field per CLI option, replacing a variant-typed argument
// store with explicit, statically-typed fields.
var opts struct {
	WordLength  uint8
	Profile     string
	Suffix      string
	Create      bool
	List        bool
	Extract     bool
	Append      bool
	Delete      bool
	Concatenate bool
	Verify      bool
}

var rootCmd = &cobra.Command{
	Use:   "haf ARCHIVE [FILE_OR_NAME...]",
	Short: "Archiver whose container is coded end to end with a single-error-correcting Hamming code",
	Long: `haf packs files into a single container (a HAF archive) coded at the
bit level with a Hamming code, so a single flipped bit anywhere in the
file — header or payload — is detected and corrected on read.

Exactly one or more of --create, --extract, --append, --delete,
--concatenate, --verify, --list may be given in a single invocation; when
several are given they run in that fixed order.`,
	Args: cobra.MinimumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Initialize(); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to initialize config: %w", err))
		}
	},
	RunE: run,
}

func wordLength(cmd *cobra.Command) (uint8, error) {
	if opts.Profile != "" {
		return config.WordLengthForProfile(opts.Profile)
	}
	if !cmd.Flags().Changed("word-length") {
		return config.DefaultWordLength, nil
	}
	return opts.WordLength, nil
}

func run(cmd *cobra.Command, args []string) error {
	archivePath := args[0]
	freeArgs := args[1:]

	w, err := wordLength(cmd)
	if err != nil {
		return err
	}

	if opts.Create {
		size, err := archive.Create(archivePath, freeArgs, w)
		if err != nil {
			return fmt.Errorf("create: %w", err)
		}
		fmt.Printf("created %s (%d bytes)\n", archivePath, size)
	}

	if opts.Extract {
		names, err := archive.Extract(archivePath, opts.Suffix)
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}
		for _, name := range names {
			fmt.Printf("extracted %s\n", name)
		}
	}

	if opts.Append {
		size, err := archive.Append(archivePath, freeArgs)
		if err != nil {
			return fmt.Errorf("append: %w", err)
		}
		fmt.Printf("appended to %s (%d bytes)\n", archivePath, size)
	}

	if opts.Delete {
		if err := archive.Delete(archivePath, freeArgs); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		fmt.Printf("deleted %d member(s) from %s\n", len(freeArgs), archivePath)
	}

	if opts.Concatenate {
		names, err := archive.Concatenate(archivePath, freeArgs)
		if err != nil {
			return fmt.Errorf("concatenate: %w", err)
		}
		fmt.Printf("concatenated %d archive(s) into %s (%d members)\n", len(freeArgs), archivePath, len(names))
	}

	if opts.Verify {
		if err := archive.Verify(archivePath); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		fmt.Printf("%s verified clean\n", archivePath)
	}

	if opts.List {
		members, err := archive.List(archivePath)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
		for _, m := range members {
			fmt.Printf("%s\t%d\n", m.Name, m.BodyLen)
		}
	}

	return nil
}

func init() {
	rootCmd.PersistentFlags().Uint8Var(&opts.WordLength, "word-length", archive.DefaultWordLength, "Hamming word length w for member records")
	rootCmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "named word-length profile from the config file, overrides --word-length")
	rootCmd.Flags().StringVar(&opts.Suffix, "suffix", "", "suffix appended to extracted file names")
	rootCmd.Flags().BoolVarP(&opts.Create, "create", "c", false, "create a new archive from the given files")
	rootCmd.Flags().BoolVarP(&opts.List, "list", "l", false, "list archive members")
	rootCmd.Flags().BoolVarP(&opts.Extract, "extract", "x", false, "extract all archive members")
	rootCmd.Flags().BoolVarP(&opts.Append, "append", "a", false, "append the given files to an existing archive")
	rootCmd.Flags().BoolVarP(&opts.Delete, "delete", "d", false, "delete the named members from the archive")
	rootCmd.Flags().BoolVarP(&opts.Concatenate, "concatenate", "C", false, "concatenate the given archives into a new one")
	rootCmd.Flags().BoolVar(&opts.Verify, "verify", false, "decode every member without writing output, reporting any structural error")
}

// Execute runs the root command.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
