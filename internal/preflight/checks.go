package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"remuxer/internal/config"
	"remuxer/internal/deps"
	"remuxer/internal/media/mkvextract"
	"remuxer/internal/policy"
	"remuxer/internal/toolexec"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Path: path, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Path: path, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// FreeBytes returns the bytes available to an unprivileged user on the
// filesystem holding dir.
func FreeBytes(dir string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", dir, err)
	}
	return st.Bavail * uint64(st.Bsize), nil
}

// CheckFreeSpace verifies that dir's filesystem can hold need more bytes.
func CheckFreeSpace(name, dir string, need uint64) Result {
	free, err := FreeBytes(dir)
	if err != nil {
		return Result{Name: name, Path: dir, Detail: err.Error()}
	}
	if free < need {
		return Result{Name: name, Path: dir, Detail: fmt.Sprintf("%s (error: %d bytes free, %d needed)", dir, free, need)}
	}
	return Result{Name: name, Path: dir, Passed: true, Detail: fmt.Sprintf("%s (%d bytes free)", dir, free)}
}

// ToolRequirements lists the binaries the configured policy needs. Tools the
// policy never invokes are reported as optional.
func ToolRequirements(cfg *config.Config) []deps.Requirement {
	p, err := cfg.RemuxPolicy()
	if err != nil {
		p = policy.Default()
	}
	needsExtract := p.ExtractMode != policy.ExtractNone || p.OCRMode != policy.OCRNone
	return []deps.Requirement{
		{
			Name:        "mkvmerge",
			Command:     cfg.Tools.MkvMerge,
			Description: "Required for probing and remuxing containers",
			VersionArgs: []string{"--version"},
		},
		{
			Name:        mkvextract.DefaultBinary,
			Command:     cfg.Tools.MkvExtract,
			Description: "Required for extracting subtitle tracks",
			Optional:    !needsExtract,
			VersionArgs: []string{"--version"},
		},
		{
			Name:        "OCR converter",
			Command:     cfg.Tools.OCR,
			Description: "Required for converting image subtitles to SubRip",
			Optional:    p.OCRMode == policy.OCRNone,
		},
	}
}

// CheckSystemDeps evaluates all binaries for the given config. The doctor
// command and the scan entry point share this list.
func CheckSystemDeps(ctx context.Context, cfg *config.Config, runner toolexec.Runner) []deps.Status {
	return deps.CheckVersions(ctx, runner, ToolRequirements(cfg))
}
