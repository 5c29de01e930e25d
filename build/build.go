package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/roemer/gotaskr"
	"github.com/roemer/gotaskr/execr"
)

// Internal variables
var outputDirectory = ".build-output"
var version = "0.1.0"

type target struct {
	name string
	goos string
	arch string
	ext  string
}

var targets = []target{
	{name: "Windows", goos: "windows", arch: "amd64", ext: ".exe"},
	{name: "Linux", goos: "linux", arch: "amd64"},
	{name: "LinuxArm", goos: "linux", arch: "arm64"},
	{name: "Mac", goos: "darwin", arch: "amd64"},
	{name: "MacArm", goos: "darwin", arch: "arm64"},
}

func main() {
	os.Exit(gotaskr.Execute())
}

func init() {
	gotaskr.Task("Test", func() error {
		return execr.Run(true, "go", "test", "./...")
	})

	for _, t := range targets {
		gotaskr.Task("Compile:"+t.name, func() error {
			os.Setenv("GOOS", t.goos)
			os.Setenv("GOARCH", t.arch)
			os.Setenv("CGO_ENABLED", "0")

			path, err := compile(t.ext)
			if err != nil {
				return err
			}
			return zipRelease(path)
		})
	}
}

func compile(ext string) (string, error) {
	outputFile := filepath.Join(outputDirectory, "mrnotify"+ext)
	ldflags := fmt.Sprintf("-X github.com/melanx/mrnotify/internal/app/mrnotify.Version=%s", version)
	return outputFile, execr.Run(true, "go", "build", "-ldflags", ldflags, "-o", outputFile, "./cmd/mrnotify")
}

func zipRelease(file string) error {
	zipFilePath := filepath.Join(outputDirectory, fmt.Sprintf("mrnotify-%s-%s-%s.zip", os.Getenv("GOOS"), version, os.Getenv("GOARCH")))

	a, err := os.Create(zipFilePath)
	if err != nil {
		return err
	}
	defer a.Close()

	return createFlatZip(a, file)
}

func createFlatZip(w io.Writer, files ...string) error {
	z := zip.NewWriter(w)
	for _, file := range files {
		src, err := os.Open(file)
		if err != nil {
			return err
		}
		info, err := src.Stat()
		if err != nil {
			src.Close()
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			src.Close()
			return err
		}
		// Write only the base name in the header
		hdr.Name = filepath.Base(file)
		dst, err := z.CreateHeader(hdr)
		if err != nil {
			src.Close()
			return err
		}
		_, err = io.Copy(dst, src)
		src.Close()
		if err != nil {
			return err
		}
	}
	return z.Close()
}
