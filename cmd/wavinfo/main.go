// This tool prints the container facts of a wav file: encoding,
// channel layout, sample rate, bit depth, and length.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	wav "github.com/cwbudde/wavfile"
)

var flagPath = flag.String("path", "", "The path to the wav file to inspect")

func main() {
	flag.Parse()

	if *flagPath == "" {
		fmt.Println("You must set the -path flag")
		os.Exit(1)
	}

	err := describe(os.Stdout, *flagPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func describe(w io.Writer, path string) error {
	file, err := wav.Open(path, "r")
	if err != nil {
		return fmt.Errorf("invalid wav file %s: %w", path, err)
	}
	defer file.Close()

	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  format:      %s\n", formatName(file.FormatTag()))
	fmt.Fprintf(w, "  channels:    %d\n", file.NumChannels())
	fmt.Fprintf(w, "  sample rate: %d Hz\n", file.SampleRate())
	fmt.Fprintf(w, "  bit depth:   %d\n", file.ValidBitsPerSample())
	fmt.Fprintf(w, "  frames:      %d\n", file.NumFrames())
	fmt.Fprintf(w, "  duration:    %s\n", file.Duration())

	return nil
}

func formatName(tag uint16) string {
	switch tag {
	case wav.FormatPCM:
		return "PCM"
	case wav.FormatIEEEFloat:
		return "IEEE float"
	case wav.FormatALaw:
		return "A-law"
	case wav.FormatMuLaw:
		return "mu-law"
	case wav.FormatExtensible:
		return "extensible"
	default:
		return fmt.Sprintf("unknown (%d)", tag)
	}
}
