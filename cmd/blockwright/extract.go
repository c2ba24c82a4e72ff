package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/goquery"
)

// Run executes the faq command.
func (c *FAQCmd) Run(deps *Dependencies) error {
	html, err := readSource(deps, c.Source)
	if err != nil {
		return err
	}
	if !c.Force && !goquery.HasServiceSignals(html) {
		fmt.Fprintln(deps.Stdout, "No service signals found; use --force to extract anyway.")
		return nil
	}
	res, err := deps.Extractor.ExtractFAQ(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		return err
	}

	if len(res.Items) == 0 {
		fmt.Fprintln(deps.Stdout, "No FAQ items found.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "%d items (confidence %d%%)\n", len(res.Items), res.Confidence)
	for _, item := range res.Items {
		fmt.Fprintf(deps.Stdout, "\nQ: %s\nA: %s\n", item.Question, item.Answer)
	}
	return nil
}

// Run executes the steps command.
func (c *StepsCmd) Run(deps *Dependencies) error {
	html, err := readSource(deps, c.Source)
	if err != nil {
		return err
	}
	if !c.Force && !goquery.HasHowToSignals(html) {
		fmt.Fprintln(deps.Stdout, "No how-to signals found; use --force to extract anyway.")
		return nil
	}
	steps, err := deps.Extractor.ExtractSteps(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
		return err
	}

	if len(steps) == 0 {
		fmt.Fprintln(deps.Stdout, "No steps found.")
		return nil
	}
	for _, s := range steps {
		fmt.Fprintf(deps.Stdout, "%d. %s\n", s.Position, s.Text)
	}
	return nil
}

// readSource returns the markup of a local file or, for http(s) sources, of
// the fetched page.
func readSource(deps *Dependencies, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		html, err := deps.Fetcher.Fetch(deps.Ctx, source)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", blockwright.ErrorMessage(err))
			return "", err
		}
		return html, nil
	}
	b, err := os.ReadFile(source)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
