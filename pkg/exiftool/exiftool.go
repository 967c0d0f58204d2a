// Package exiftool drives a persistent exiftool process for batch
// metadata writes. The tool itself is an opaque collaborator; this
// package only speaks its -stay_open command protocol.
package exiftool

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// exiftool prints this on stdout after a successful single-file write.
	successfulWriteMessage = "1 image files updated"

	exifDateTimeFormat = "2006:01:02 15:04:05"
)

// Tool manages an exiftool process in -stay_open mode so a whole run
// pays the perl startup cost once.
type Tool struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Scanner
}

// New starts an exiftool process in stay-open mode. It fails when the
// binary is not on PATH, which callers treat as a fatal precondition.
func New() (*Tool, error) {
	path, err := exec.LookPath("exiftool")
	if err != nil {
		return nil, fmt.Errorf("exiftool not found in PATH: %w", err)
	}

	// "-" as the argument to -@ reads command args from stdin.
	cmd := exec.Command(path, "-stay_open", "True", "-@", "-")
	log.WithField("args", cmd.Args).Debug("starting exiftool")

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			log.WithField("stderr", scanner.Text()).Debug("exiftool")
		}
	}()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting exiftool: %w", err)
	}

	return &Tool{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewScanner(stdout),
	}, nil
}

// SetCaptureTime writes the capture-time tags for one image. The
// sub-second tags carry the millisecond component so programs sorting
// by capture time preserve scan order.
func (t *Tool) SetCaptureTime(path string, tm time.Time) error {
	out, err := t.execute(captureTimeArgs(path, tm)...)
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) != successfulWriteMessage {
		return fmt.Errorf("exiftool: %s", strings.TrimSpace(out))
	}
	return nil
}

// captureTimeArgs builds the per-file argument list sent over the
// stay-open channel, one argument per line.
func captureTimeArgs(path string, tm time.Time) []string {
	datetime := tm.Format(exifDateTimeFormat)
	subsec := fmt.Sprintf("%03d", tm.Nanosecond()/int(time.Millisecond))

	return []string{
		"-G",
		"-n",
		"-overwrite_original",
		"-EXIF:DateTimeOriginal=" + datetime,
		"-EXIF:DateTimeDigitized=" + datetime,
		"-EXIF:SubSecTimeOriginal=" + subsec,
		"-EXIF:SubSecTimeDigitized=" + subsec,
		path,
	}
}

// execute sends one command to the running process and reads its
// output up to the {ready} sentinel.
func (t *Tool) execute(args ...string) (string, error) {
	for _, arg := range args {
		if _, err := fmt.Fprintln(t.stdin, arg); err != nil {
			return "", fmt.Errorf("writing arg %q: %w", arg, err)
		}
	}
	if _, err := fmt.Fprintln(t.stdin, "-execute"); err != nil {
		return "", fmt.Errorf("writing execute command: %w", err)
	}

	var output strings.Builder
	for t.stdout.Scan() {
		line := t.stdout.Text()
		if strings.HasPrefix(line, "{ready}") {
			break
		}
		output.WriteString(line)
		output.WriteString("\n")
	}
	if err := t.stdout.Err(); err != nil {
		return "", fmt.Errorf("reading output: %w", err)
	}

	return output.String(), nil
}

// Close shuts the exiftool process down gracefully.
func (t *Tool) Close() error {
	if _, err := fmt.Fprintln(t.stdin, "-stay_open"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(t.stdin, "False"); err != nil {
		return err
	}
	if err := t.stdin.Close(); err != nil {
		return err
	}
	return t.cmd.Wait()
}
