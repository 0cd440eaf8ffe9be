package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	wav "github.com/cwbudde/wavfile"
	"github.com/go-audio/audio"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	log.Printf("generating a %f sec sine wav at %f hz", *length, *frequency)

	const sampleRate = 48000

	out, err := wav.Open(*output, "w")
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer out.Close()

	if err := out.SetNumChannels(1); err != nil {
		return err
	}

	if err := out.SetSampleRate(sampleRate); err != nil {
		return err
	}

	if err := out.SetSampleSize(2); err != nil {
		return err
	}

	numSamples := int(sampleRate * *length)
	buf := &audio.Float32Buffer{
		Format: out.Format(),
		Data:   make([]float32, numSamples),
	}

	for i := 0; i < numSamples; i++ {
		buf.Data[i] = float32(math.Sin(float64(i) / sampleRate * *frequency * 2 * math.Pi))
	}

	if _, err := out.WriteFloatBuffer(buf); err != nil {
		return err
	}

	return out.Close()
}
