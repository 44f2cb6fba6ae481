package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/djdv/go-pagesim"
)

// console reads whitespace separated answers from stdin.
// Prompts are only written when stdin is a terminal.
type console struct {
	words  *bufio.Scanner
	prompt io.Writer
}

var errMissingInput = errors.New("unexpected end of input")

func newConsole(stdin io.Reader, stdout io.Writer) *console {
	words := bufio.NewScanner(stdin)
	words.Split(bufio.ScanWords)
	c := &console{words: words}
	if file, ok := stdin.(*os.File); ok &&
		term.IsTerminal(int(file.Fd())) {
		c.prompt = stdout
	}
	return c
}

func (c *console) ask(prompt string) {
	if c.prompt != nil {
		fmt.Fprint(c.prompt, prompt)
	}
}

func (c *console) word(what string) (string, error) {
	if !c.words.Scan() {
		if err := c.words.Err(); err != nil {
			return "", fmt.Errorf("reading %s: %w", what, err)
		}
		return "", fmt.Errorf("reading %s: %w", what, errMissingInput)
	}
	return c.words.Text(), nil
}

func (c *console) integer(what string) (int, error) {
	text, err := c.word(what)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", what, err)
	}
	return value, nil
}

// complete asks for every setting config leaves unset,
// in the order frame size, reference count, workers, policy,
// and then reads the reference string itself.
func (c *console) complete(config *Config) ([]pagesim.Page, error) {
	var err error
	if config.Frames == 0 {
		c.ask("Enter frame size: ")
		if config.Frames, err = c.integer("frame size"); err != nil {
			return nil, err
		}
	}
	c.ask("Enter the number of references: ")
	count, err := c.integer("number of references")
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("number of references must be positive but %d was given", count)
	}
	if config.Workers == 0 {
		c.ask("Enter the number of threads: ")
		if config.Workers, err = c.integer("number of threads"); err != nil {
			return nil, err
		}
	}
	if config.Policy == "" {
		c.ask("Enter the algorithm (FIFO, LRU, or Optimal): ")
		if config.Policy, err = c.word("algorithm"); err != nil {
			return nil, err
		}
		if _, err := pagesim.ParsePolicy(config.Policy); err != nil {
			return nil, err
		}
	}
	c.ask("Enter the references: ")
	references := make([]pagesim.Page, count)
	for i := range references {
		what := fmt.Sprintf("reference %d of %d", i+1, count)
		if references[i], err = c.integer(what); err != nil {
			return nil, err
		}
	}
	return references, nil
}
