package resources

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/notedown/engine/emoji"
	"github.com/npillmayer/schuko"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	styleResourceType
	emojiResourceType
)

// Names of resources packaged with the module.
const (
	DefaultStylesheet = "packaged/default.css"
	DefaultEmojiTable = "packaged/emoji.txt"
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case styleResourceType:
		s = fmt.Sprintf("stylesheet not found: %s", res)
	case emojiResourceType:
		s = fmt.Sprintf("emoji table not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, s)
}

//go:embed packaged/*
var packaged embed.FS

// IsRemote is a predicate: is name an http(s) URL?
func IsRemote(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// load reads the content of a resource. conf is consulted for the cache
// location of remote resources only.
func load(name string, rtype resourceType, conf schuko.Configuration) ([]byte, error) {
	if strings.HasPrefix(name, "packaged/") {
		data, err := packaged.ReadFile(name)
		if err != nil {
			return nil, NotFound(name, rtype)
		}
		return data, nil
	}
	path := name
	if IsRemote(name) {
		var err error
		if path, err = CachedFile(conf, name); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, NotFound(name, rtype)
	} else if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "cannot read %s", name)
	}
	return data, nil
}

// --- Stylesheets -----------------------------------------------------------

// Stylesheet is a loaded CSS stylesheet.
type Stylesheet struct {
	Name  string          // name the stylesheet has been resolved from
	Text  string          // content as read
	Sheet *css.Stylesheet // parsed content
}

type stylePlusErr struct {
	style *Stylesheet
	err   error
}

type StylesheetPromise interface {
	Stylesheet() (*Stylesheet, error)
}

type styleLoader struct {
	await func(ctx context.Context) (*Stylesheet, error)
}

func (loader styleLoader) Stylesheet() (*Stylesheet, error) {
	return loader.await(context.Background())
}

// ResolveStylesheet loads and parses a stylesheet. Stylesheets which cannot
// be parsed result in an error of code core.EINVALID.
func ResolveStylesheet(name string, conf schuko.Configuration) StylesheetPromise {
	ch := make(chan stylePlusErr, 1)
	go func(ch chan<- stylePlusErr) {
		defer close(ch)
		result := stylePlusErr{}
		data, err := load(name, styleResourceType, conf)
		if err != nil {
			result.err = err
			ch <- result
			return
		}
		sheet, err := parser.Parse(string(data))
		if err != nil {
			result.err = core.WrapError(err, core.EINVALID, "stylesheet %s cannot be parsed", name)
			ch <- result
			return
		}
		tracer().Debugf("stylesheet %s has %d rules", name, len(sheet.Rules))
		result.style = &Stylesheet{Name: name, Text: string(data), Sheet: sheet}
		ch <- result
	}(ch)
	return styleLoader{
		await: func(ctx context.Context) (*Stylesheet, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.style, r.err
			}
		},
	}
}

// --- Emoji tables ----------------------------------------------------------

type tablePlusErr struct {
	table *emoji.Table
	err   error
}

type EmojiTablePromise interface {
	Table() (*emoji.Table, error)
}

type tableLoader struct {
	await func(ctx context.Context) (*emoji.Table, error)
}

func (loader tableLoader) Table() (*emoji.Table, error) {
	return loader.await(context.Background())
}

// ResolveEmojiTable loads an emoji look-up table.
func ResolveEmojiTable(name string, conf schuko.Configuration) EmojiTablePromise {
	ch := make(chan tablePlusErr, 1)
	go func(ch chan<- tablePlusErr) {
		defer close(ch)
		result := tablePlusErr{}
		data, err := load(name, emojiResourceType, conf)
		if err != nil {
			result.err = err
			ch <- result
			return
		}
		table := emoji.NewTable()
		if _, result.err = table.Load(bytes.NewReader(data)); result.err == nil {
			result.table = table
		}
		ch <- result
	}(ch)
	return tableLoader{
		await: func(ctx context.Context) (*emoji.Table, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.table, r.err
			}
		},
	}
}
