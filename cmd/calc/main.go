package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"cardcredit/internal/domain/auth"
	"cardcredit/internal/domain/deduction"
	"cardcredit/internal/platform/money"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	salary := fs.String("salary", "", "annual gross salary, e.g. 40,000,000")
	credit := fs.String("credit", "", "credit card spend")
	check := fs.String("check", "", "check card spend")
	cash := fs.String("cash", "", "cash receipt spend")
	market := fs.String("market", "", "traditional market spend")
	transport := fs.String("transport", "", "public transport spend")
	culture := fs.String("culture", "", "culture spend")
	policyFile := fs.String("policy", "", "YAML policy snapshot (defaults to the built-in table)")
	asJSON := fs.Bool("json", false, "print the raw result as JSON")
	issueToken := fs.Bool("issue-token", false, "print an API token signed with JWT_SECRET and exit")
	subject := fs.String("subject", "", "token subject for -issue-token")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime for -issue-token")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *issueToken {
		return printToken(stdout, stderr, *subject, *ttl)
	}

	policy := deduction.DefaultPolicy()
	if *policyFile != "" {
		loaded, err := deduction.LoadPolicy(*policyFile)
		if err != nil {
			fmt.Fprintf(stderr, "policy: %v\n", err)
			return 1
		}
		policy = loaded
	}

	in := deduction.Input{
		Salary:    deduction.ParseAmount(*salary),
		Credit:    deduction.ParseAmount(*credit),
		Check:     deduction.ParseAmount(*check),
		Cash:      deduction.ParseAmount(*cash),
		Market:    deduction.ParseAmount(*market),
		Transport: deduction.ParseAmount(*transport),
		Culture:   deduction.ParseAmount(*culture),
	}
	res, err := deduction.NewCalculator(policy).Compute(in)
	if errors.Is(err, deduction.ErrMissingSalary) {
		fmt.Fprintln(stderr, "총급여액을 입력하세요")
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "calculate: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return 1
		}
		return 0
	}
	printResult(stdout, res)
	return 0
}

func printResult(w io.Writer, res deduction.Result) {
	fmt.Fprintf(w, "기본공제\t%s\n", money.Won(res.Basic))
	fmt.Fprintf(w, "추가공제\t%s\n", money.Won(res.Extra))
	fmt.Fprintf(w, "총 공제액\t%s\n\n", money.Won(res.Total))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "구분\t사용액\t공제대상\t공제액\t")
	for _, row := range res.Breakdown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", row.Label, money.Won(row.Spend), money.Won(row.Eligible), money.Won(row.Credit))
	}
	_ = tw.Flush()
}

func printToken(stdout, stderr io.Writer, subject string, ttl time.Duration) int {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" || subject == "" {
		fmt.Fprintln(stderr, "JWT_SECRET and -subject are required")
		return 2
	}
	token, err := auth.GenerateToken(secret, subject, ttl)
	if err != nil {
		fmt.Fprintf(stderr, "token: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, token)
	return 0
}
