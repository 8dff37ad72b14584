package checkout

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// TerminalUI окно оплаты в терминале: оператор сам сообщает исход платежа
type TerminalUI struct {
	in  *bufio.Scanner
	out io.Writer
	// AskSignature нужен для шлюзов с проверкой подписи
	AskSignature bool
}

var _ PaymentUI = (*TerminalUI)(nil)

func NewTerminalUI(in io.Reader, out io.Writer) *TerminalUI {
	return &TerminalUI{in: bufio.NewScanner(in), out: out}
}

func (t *TerminalUI) Open(ctx context.Context, sessionID string) (Outcome, error) {
	fmt.Fprintf(t.out, "Payment session: %s\n", sessionID)
	for {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		answer, err := t.Prompt("Result [p]aid / [f]ailed / [c]ancel: ")
		if err != nil {
			return Outcome{}, err
		}
		switch strings.ToLower(answer) {
		case "p", "paid":
			ref, err := t.Prompt("Payment id: ")
			if err != nil {
				return Outcome{}, err
			}
			out := Outcome{Kind: OutcomeSuccess, PaymentRef: ref}
			if t.AskSignature {
				if out.Signature, err = t.Prompt("Signature: "); err != nil {
					return Outcome{}, err
				}
			}
			return out, nil
		case "f", "failed":
			reason, err := t.Prompt("Reason: ")
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Kind: OutcomeError, Reason: reason}, nil
		case "c", "cancel":
			return Outcome{Kind: OutcomeCancelled}, nil
		}
		fmt.Fprintln(t.out, "Please answer p, f or c.")
	}
}

// Prompt печатает вопрос и читает строку ответа
func (t *TerminalUI) Prompt(question string) (string, error) {
	fmt.Fprint(t.out, question)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}
