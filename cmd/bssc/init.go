package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new BSS project",
	Long: `Initialize a new BSS project by creating a manifest (bss.toml) and a
sample stylesheet (styles/main.bss). If [path] is omitted, initializes the
current directory; a missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	created, err := initProject(abs)
	if err != nil {
		return err
	}
	printInitResult(cmd.OutOrStdout(), abs, created)
	return nil
}

// initProject writes bss.toml and, unless it exists, styles/main.bss into
// dir. It refuses to touch a directory that already has a manifest.
func initProject(dir string) (createdMain bool, err error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, err
		}
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return false, fmt.Errorf("%q is not a directory", dir)
	}

	manifestPath := filepath.Join(dir, manifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return false, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest()), 0o600); err != nil {
		return false, fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(dir, "styles", "main.bss")
	if _, err := os.Stat(mainPath); !errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(mainPath, []byte(defaultMainBSS), 0o600); err != nil {
		return false, fmt.Errorf("failed to write main.bss: %w", err)
	}
	return true, nil
}

func printInitResult(out io.Writer, dir string, createdMain bool) {
	rel := dir
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, dir); err == nil {
			rel = r
		}
	}
	fmt.Fprintf(out, "Initialized BSS project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", manifestName)
	if createdMain {
		fmt.Fprintf(out, "  - styles/main.bss\n")
	} else {
		fmt.Fprintf(out, "  - styles/main.bss (existing)\n")
	}
}

const defaultMainBSS = `$accent: #3366cc;
$gap: 8px !default;

@mixin rounded($r) {
    border-radius: $r;
}

.card {
    padding: $gap * 2;
    @include rounded(4px);

    h2 {
        color: $accent;
    }
    &:hover {
        color: lighten($accent, 10%);
    }
    @media screen and (max-width: 600px) {
        padding: $gap;
    }
}
`
