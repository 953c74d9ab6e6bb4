// Package ucltoken implements a lossy, whitespace-non-faithful
// re-serialization of a token stream, for callers that want to work with
// tokens directly rather than a ValueTree. This is not a pretty-printer of
// parsed output — it echoes the tokens the lexer produced, one space apart,
// nothing more.
package ucltoken

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goucl/ucl"
)

// Echo drains ts, writing each token's literal or reconstructed text to w
// separated by single spaces. Comments are written as-is (with their
// original delimiter) when present in the stream, which only happens when
// the lexer was built with Options.PreserveComments set.
func Echo(ts *ucl.TokenStream, w io.Writer) error {
	first := true
	sep := func() error {
		if first {
			first = false
			return nil
		}
		_, err := io.WriteString(w, " ")
		return err
	}

	written := 0
	for {
		tok, err := ts.Next()
		if err != nil {
			return err
		}
		// The stream collects comments instead of returning them as tokens;
		// write the ones gathered ahead of tok first.
		for _, c := range ts.Comments()[written:] {
			if err := sep(); err != nil {
				return err
			}
			if _, err := io.WriteString(w, commentText(c)); err != nil {
				return err
			}
		}
		written = len(ts.Comments())
		if tok.Kind == ucl.TokEOF {
			return nil
		}
		if err := sep(); err != nil {
			return err
		}
		text, err := tokenText(tok)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
}

func tokenText(tok ucl.Token) (string, error) {
	switch tok.Kind {
	case ucl.TokObjectStart:
		return "{", nil
	case ucl.TokObjectEnd:
		return "}", nil
	case ucl.TokArrayStart:
		return "[", nil
	case ucl.TokArrayEnd:
		return "]", nil
	case ucl.TokComma:
		return ",", nil
	case ucl.TokSemicolon:
		return ";", nil
	case ucl.TokEquals:
		return "=", nil
	case ucl.TokColon:
		return ":", nil
	case ucl.TokIdentifier:
		return tok.Ident, nil
	case ucl.TokString:
		return strconv.Quote(tok.Str.String()), nil
	case ucl.TokInteger:
		return strconv.FormatInt(tok.Int, 10), nil
	case ucl.TokFloat, ucl.TokTime, ucl.TokSpecialFloat:
		return strconv.FormatFloat(tok.Float, 'g', -1, 64), nil
	case ucl.TokSizedInteger, ucl.TokHexInteger:
		return strconv.FormatUint(tok.UInt, 10), nil
	case ucl.TokBoolean:
		return strconv.FormatBool(tok.Bool), nil
	case ucl.TokNull:
		return "null", nil
	case ucl.TokComment:
		return commentText(tok.CommentVal), nil
	default:
		return "", fmt.Errorf("ucltoken: unhandled token kind %v", tok.Kind)
	}
}

func commentText(c ucl.Comment) string {
	switch c.Kind {
	case ucl.CommentCpp:
		return "//" + c.Text
	case ucl.CommentMulti:
		return "/*" + c.Text + "*/"
	default:
		return "#" + c.Text
	}
}
