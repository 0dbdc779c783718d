package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/chzyer/readline"
)

// lineReader yields one line of user input at a time. io.EOF ends the chat.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

const chatPrompt = "você› "

// newTerminalReader returns a readline editor with history and line editing.
func newTerminalReader(in io.Reader, out io.Writer) (lineReader, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          formatter.StyleBlue.Render(chatPrompt),
		Stdin:           io.NopCloser(in),
		Stdout:          out,
		InterruptPrompt: "^C",
		EOFPrompt:       "/exit",
		HistoryLimit:    200,
	})
}

// scannerReader reads newline-separated messages from a pipe or file.
type scannerReader struct {
	sc *bufio.Scanner
}

func newScannerReader(in io.Reader) *scannerReader {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &scannerReader{sc: sc}
}

func (r *scannerReader) Readline() (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scannerReader) Close() error { return nil }

// runPlainChat prints the transcript, then answers one line at a time until
// EOF, an interrupt or /exit. Assistant failures are printed and the loop
// continues.
func runPlainChat(ctx context.Context, chat chatSender, b *domain.Briefing, history []domain.ChatMessage, in lineReader, out io.Writer) error {
	defer in.Close()

	fmt.Fprintln(out, formatter.Header(b.Summary(40)))
	if t := formatter.FormatTranscript(history, 0); t != "" {
		fmt.Fprintln(out, t)
	}
	fmt.Fprintln(out, formatter.Dim("Type /exit to leave."))

	for {
		line, err := in.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}

		text := strings.TrimSpace(line)
		switch text {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		}

		reply, err := chat.SendMessage(ctx, b.ID, text)
		if reply != nil {
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatChatMessage(*reply, 0))
			fmt.Fprintln(out)
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(out, formatter.StyleRed.Render("error: "+err.Error()))
		}
	}
}
