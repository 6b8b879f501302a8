// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// drain collects every Item until the Lexer closes its channel.
func drain(l *Lexer) (items []Item) {
	for {
		item, ok := l.Item()
		if !ok {
			return
		}
		items = append(items, item)
	}
}

func TestLexer_Lex(t *testing.T) {
	logger := logrus.New()

	tests := []struct {
		name      string
		input     string
		opts      []Option
		wantItems []Item
		wantVals  int
		wantEnds  int
	}{
		{
			name:  "valid",
			input: "2,3))",
			wantItems: []Item{
				{ID: ItemValue, Val: "2", Pos: 0},
				{ID: ItemSplitter, Pos: 1},
				{ID: ItemValue, Val: "3", Pos: 2},
				{ID: ItemEndMarker, Pos: 3},
				{ID: ItemEndMarker, Pos: 4},
				{ID: ItemEOF, Pos: 5},
			},
			wantVals: 2,
			wantEnds: 2,
		},
		{
			name:  "whitespace & symbols",
			input: " node_1 ,\n\tchild-é.2 ) )\n",
			wantItems: []Item{
				{ID: ItemValue, Val: "node_1", Pos: 1},
				{ID: ItemSplitter, Pos: 8},
				{ID: ItemValue, Val: "child-é.2", Pos: 11},
				{ID: ItemEndMarker, Pos: 21},
				{ID: ItemEndMarker, Pos: 23},
				{ID: ItemEOF, Pos: 25},
			},
			wantVals: 2,
			wantEnds: 2,
		},
		{
			name:  "custom markers",
			input: "a;b//",
			opts:  []Option{WithSplitter(';'), WithEndMarker('/')},
			wantItems: []Item{
				{ID: ItemValue, Val: "a", Pos: 0},
				{ID: ItemSplitter, Pos: 1},
				{ID: ItemValue, Val: "b", Pos: 2},
				{ID: ItemEndMarker, Pos: 3},
				{ID: ItemEndMarker, Pos: 4},
				{ID: ItemEOF, Pos: 5},
			},
			wantVals: 2,
			wantEnds: 2,
		},
		{
			name:      "empty",
			input:     "",
			wantItems: []Item{{ID: ItemEOF, Pos: 0}},
		},
		{
			name:  "trailing value",
			input: "a",
			wantItems: []Item{
				{ID: ItemValue, Val: "a", Pos: 0},
				{ID: ItemEOF, Pos: 1},
			},
			wantVals: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithLogger(logger), WithSource(strings.NewReader(tt.input))}, tt.opts...)
			l := New(opts...)
			go l.Lex(context.Background())

			if got := drain(l); !reflect.DeepEqual(got, tt.wantItems) {
				t.Errorf("Lexer.Lex() = %v, want %v", got, tt.wantItems)
			}
			if l.ValueCounter() != tt.wantVals || l.EndCounter() != tt.wantEnds {
				t.Errorf("Lexer counters = %d, %d, want %d, %d", l.ValueCounter(), l.EndCounter(), tt.wantVals, tt.wantEnds)
			}
		})
	}
}

func TestLexer_LexUnknownTokens(t *testing.T) {
	l := New(WithSource(strings.NewReader("a,$b)")))
	go l.Lex(context.Background())

	items := drain(l)
	if len(items) < 1 {
		t.Fatal("Lexer.Lex() emitted no items")
	}

	last := items[len(items)-1]
	if last.ID != ItemError || !errors.Is(last.Err, ErrUnknownTokens) {
		t.Errorf("Lexer.Lex() last item = %v, want an %v error", last, ErrUnknownTokens)
	}
	if !strings.Contains(last.Err.Error(), "$b)") {
		t.Errorf("Lexer.Lex() error = %v, want it to quote the source", last.Err)
	}
}

func TestLexer_LexCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(WithSource(strings.NewReader("2,3))")))
	go l.Lex(ctx)

	if got := drain(l); len(got) != 0 {
		t.Errorf("Lexer.Lex() = %v, want no items", got)
	}
}

func TestOpts_IsValue(t *testing.T) {
	opts := NewOpts()

	tests := []struct {
		value string
		want  bool
	}{
		{"root", true},
		{"child-a_1.2", true},
		{"ünïcode", true},
		{"", false},
		{"a b", false},
		{"a,b", false},
		{"a)", false},
	}

	for _, tt := range tests {
		if got := opts.IsValue(tt.value); got != tt.want {
			t.Errorf("Opts.IsValue(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestOpts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Opts
		wantErr error
	}{
		{name: "defaults", opts: Opts{}},
		{name: "custom", opts: Opts{Splitter: ';', EndMarker: '/'}},
		{name: "space splitter", opts: Opts{Splitter: ' '}, wantErr: ErrInvalidMarker},
		{name: "newline end marker", opts: Opts{EndMarker: '\n'}, wantErr: ErrInvalidMarker},
		{name: "value rune", opts: Opts{Splitter: 'x'}, wantErr: ErrInvalidMarker},
		{name: "same markers", opts: Opts{Splitter: '/', EndMarker: '/'}, wantErr: ErrInvalidMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Opts.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	l := New(WithSplitter('\t'))
	if err := l.Validate(); !errors.Is(err, ErrInvalidMarker) {
		t.Errorf("Lexer.Validate() error = %v, wantErr %v", err, ErrInvalidMarker)
	}
}

func BenchmarkLexer_Lex(b *testing.B) {
	src := "2,3,4))"

	logger := logrus.New()
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		b.StopTimer()
		l := New(WithLogger(logger), WithSource(strings.NewReader(src)))
		b.StartTimer()

		go l.Lex(ctx)

		for {
			if item, proceed := l.Item(); !proceed || item.ID == ItemEOF {
				break
			}
		}
	}
}
