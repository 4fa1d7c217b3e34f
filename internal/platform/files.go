package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// Directory names
const (
	DocumentsDirName = "Documents"
	AppDirName       = "img2pdf"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// SystemViewer opens files with the default system application.
type SystemViewer struct{}

// OpenPath implements merge.Viewer
func (SystemViewer) OpenPath(ctx context.Context, path string) error {
	return OpenFileWithDefaultApp(ctx, path)
}

// OpenFileInManager opens the file's folder in the system file manager and
// highlights the file where the platform supports it
func OpenFileInManager(ctx context.Context, filePath string) error {
	absPath, err := existingAbs(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.CommandContext(ctx, OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.CommandContext(ctx, ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openFileInManagerLinux(ctx, absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens directory containing file on Linux
// Note: File selection is not standardized on Linux, so we open the parent directory
func openFileInManagerLinux(ctx context.Context, filePath string) error {
	dir := filepath.Dir(filePath)

	if err := exec.CommandContext(ctx, XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.CommandContext(ctx, fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(ctx context.Context, filePath string) error {
	absPath, err := existingAbs(filePath)
	if err != nil {
		return err
	}

	cmd, err := defaultAppCommand(ctx, absPath)
	if err != nil {
		return err
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to open %s: %w (%s)", absPath, err, string(out))
	}
	return nil
}

func defaultAppCommand(ctx context.Context, filePath string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case OSDarwin:
		return exec.CommandContext(ctx, OpenCommand, filePath), nil
	case OSWindows:
		return exec.CommandContext(ctx, CmdCommand, WindowsCmdFlag, StartCommand, "", filePath), nil
	case OSLinux:
		return exec.CommandContext(ctx, XDGOpenCommand, filePath), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func existingAbs(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetDocumentsDir returns the user's Documents directory, the default save location
func GetDocumentsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DocumentsDirName), nil
}

// AppConfigDir returns the per-user directory for the config and log files
func AppConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// ExpandPaths replaces each directory in paths with the regular files directly
// inside it, in directory order. Files are kept as given; unreadable entries
// are skipped.
func ExpandPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				out = append(out, filepath.Join(p, entry.Name()))
			}
		}
	}
	return slices.Clip(out)
}
