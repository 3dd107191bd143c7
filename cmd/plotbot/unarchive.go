package main

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive extracts zip, gz and lz4 uploads next to the archive and
// removes the archive. Other files pass through unchanged.
func unpackArchive(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackGzipArchive(filePath)
	case ".lz4":
		return unpackLZ4Archive(filePath)
	}
	return filePath, nil
}

// unpackZipArchive extracts the largest entry, which is taken to be the
// data file. Entry names are flattened to their base name.
func unpackZipArchive(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %v", filePath, err)
	}
	defer r.Close()

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", fmt.Errorf("archive %s has no files", filePath)
	}

	destPath := filepath.Join(filepath.Dir(filePath), filepath.Base(largestFile.Name))
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("error creating %s: %v", destPath, err)
	}
	defer outFile.Close()
	rc, err := largestFile.Open()
	if err != nil {
		return "", fmt.Errorf("error opening %s in archive: %v", largestFile.Name, err)
	}
	defer rc.Close()
	if _, err := io.Copy(outFile, rc); err != nil {
		return "", fmt.Errorf("error extracting %s: %v", largestFile.Name, err)
	}

	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackGzipArchive(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %v", filePath, err)
	}
	defer file.Close()
	gr, err := gzip.NewReader(file)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %v", filePath, err)
	}
	defer gr.Close()

	destPath := strings.TrimSuffix(filePath, filepath.Ext(filePath))
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("error creating %s: %v", destPath, err)
	}
	defer outFile.Close()
	if _, err := io.Copy(outFile, gr); err != nil {
		return "", fmt.Errorf("error extracting %s: %v", filePath, err)
	}

	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackLZ4Archive(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %v", filePath, err)
	}
	defer file.Close()

	destPath := strings.TrimSuffix(filePath, filepath.Ext(filePath))
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("error creating %s: %v", destPath, err)
	}
	defer outFile.Close()
	if _, err := io.Copy(outFile, lz4.NewReader(file)); err != nil {
		return "", fmt.Errorf("error extracting %s: %v", filePath, err)
	}

	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}
