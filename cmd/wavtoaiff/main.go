// This tool converts a wav file into an aiff file and stores it in the
// same folder as the source.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	wav "github.com/cwbudde/wavfile"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

var flagPath = flag.String("path", "", "The path to the wav file to convert to aiff")

func main() {
	flag.Parse()

	if *flagPath == "" {
		fmt.Println("You must set the -path flag")
		os.Exit(1)
	}

	outPath := (*flagPath)[:len(*flagPath)-len(filepath.Ext(*flagPath))] + ".aif"

	err := convert(*flagPath, outPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("Wav file converted to %s\n", outPath)
}

func convert(inPath, outPath string) error {
	in, err := wav.Open(inPath, "r")
	if err != nil {
		return fmt.Errorf("invalid wav file %s: %w", inPath, err)
	}
	defer in.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, in.SampleRate(), in.BitsPerSample(), in.NumChannels())

	const bufferFrames = 4096

	buf := &audio.IntBuffer{
		Format:         in.Format(),
		SourceBitDepth: in.BitsPerSample(),
		Data:           make([]int, bufferFrames*in.NumChannels()),
	}

	for {
		n, err := in.ReadPCMBuffer(buf)
		if err != nil {
			return err
		}

		if n == 0 {
			break
		}

		chunk := buf
		if n*in.NumChannels() != len(buf.Data) {
			chunk = &audio.IntBuffer{
				Format:         buf.Format,
				SourceBitDepth: buf.SourceBitDepth,
				Data:           buf.Data[:n*in.NumChannels()],
			}
		}

		if err := encoder.Write(chunk); err != nil {
			return err
		}
	}

	return encoder.Close()
}
