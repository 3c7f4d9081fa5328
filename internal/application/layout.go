package application

import (
	"fmt"
	"path/filepath"
)

func OrderPath(baseDir, lagSet string, order int) string {
	return filepath.Join(baseDir, lagSet, fmt.Sprintf("order_%d.txt", order))
}

func DebugPath(baseDir, lagSet string, order int) string {
	return filepath.Join(baseDir, lagSet, "debug", fmt.Sprintf("order_%d_debug.csv", order))
}

func BinsPath(baseDir, stimSet string) string {
	return filepath.Join(baseDir, fmt.Sprintf("Set%s bins.txt", stimSet))
}

func PresentationPath(outDir, lagSet, stimSet string, order, run int) string {
	return filepath.Join(outDir, fmt.Sprintf("%s_%s_%d_%d.js", lagSet, stimSet, order, run))
}
