package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirmState tracks a destructive action through its confirmation.
type confirmState int

const (
	statePending confirmState = iota
	stateConfirmed
	stateCancelled
)

// pendingConfirmation holds a destructive action until the user
// confirms or cancels it. The action runs at most once, and only from
// the confirmed state.
type pendingConfirmation struct {
	prompt string
	action func() error
	state  confirmState
}

func newConfirmation(prompt string, action func() error) *pendingConfirmation {
	return &pendingConfirmation{prompt: prompt, action: action}
}

func (p *pendingConfirmation) Confirm() error {
	if p.state != statePending {
		return fmt.Errorf("action already %s", p.stateName())
	}
	p.state = stateConfirmed
	return p.action()
}

func (p *pendingConfirmation) Cancel() {
	if p.state == statePending {
		p.state = stateCancelled
	}
}

func (p *pendingConfirmation) stateName() string {
	switch p.state {
	case stateConfirmed:
		return "confirmed"
	case stateCancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// resolve asks the user unless the caller pre-approved with --yes.
func (p *pendingConfirmation) resolve(in io.Reader, out io.Writer, preApproved bool) error {
	if preApproved {
		return p.Confirm()
	}

	fmt.Fprintf(out, "%s [y/N]: ", p.prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		p.Cancel()
		return nil
	}

	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		return p.Confirm()
	}
	p.Cancel()
	fmt.Fprintln(out, "Cancelled")
	return nil
}
