package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"envmapgen/ibl"
)

type infoArgs struct {
	commonArgs
}

func createInfoCommand() *command {
	args := infoArgs{}

	flags := flag.NewFlagSet("info", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	return &command{
		Name: "info",
		Help: "print iblenv container headers",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 {
				printCommandUsage(self, " file-glob...")
			}
			cargs = &args.commonArgs

			for _, p := range gatherInputFiles(self.Flags.Args()) {
				softerr(infoFile(p))
			}
		},
		Flags: flags,
	}
}

func infoFile(p string) error {
	inFile, err := os.Open(p)
	if err != nil {
		return err
	}
	defer close(inFile)

	le := binary.LittleEndian

	var header struct {
		Check       uint32
		Version     uint32
		Compression uint32
		Size        uint32
	}
	err = binary.Read(inFile, le, &header)
	if err != nil {
		return err
	}

	if header.Check != ibl.MagicNumberIBLENV {
		return fmt.Errorf("%q is not an iblenv container", p)
	}

	levels := uint32(1)
	if header.Version >= uint32(ibl.IblEnvVersion1_002_000) {
		err = binary.Read(inFile, le, &levels)
		if err != nil {
			return err
		}
	}

	compression := "none"
	switch ibl.IblEnvCompression(header.Compression) {
	case ibl.IblEnvCompressionLZ4Fast:
		compression = "lz4-fast"
	case ibl.IblEnvCompressionLZ4:
		compression = "lz4"
	}

	fmt.Printf("%s:\n", filepath.ToSlash(filepath.Clean(p)))
	fmt.Printf("    version:     %d\n", header.Version)
	fmt.Printf("    compression: %s\n", compression)
	fmt.Printf("    levels:      %d\n", levels)
	for lvl := 0; lvl < int(levels); lvl++ {
		size := ibl.CalcLevelSize(int(header.Size), lvl)
		fmt.Printf("    level %d:     %dx%dx6\n", lvl, size, size)
	}

	return nil
}
