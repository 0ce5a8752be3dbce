package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// readInts parses whitespace-separated integers from r. name identifies r
// in error messages.
func readInts(r io.Reader, name string) ([]int, error) {
	var result []int
	scanner := bufio.NewScanner(bufio.NewReader(r))
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%s: integer %d: %w", name, len(result)+1, err)
		}
		result = append(result, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return result, nil
}

// readFiles parses the given files concurrently and concatenates their
// integers in the order the files are given.
func readFiles(ctx context.Context, paths []string) ([]int, error) {
	parts := make([][]int, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()
			parts[i], err = readInts(f, path)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var size int
	for _, part := range parts {
		size += len(part)
	}
	result := make([]int, 0, size)
	for _, part := range parts {
		result = append(result, part...)
	}
	return result, nil
}
