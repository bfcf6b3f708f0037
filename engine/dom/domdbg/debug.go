/*
Package domdbg draws document trees with GraphViz.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package domdbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/notedown/engine/dom"
	"github.com/npillmayer/schuko/tracing"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
	cnt      int
}

// ToGraphViz creates a graphical representation of a document tree.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
func ToGraphViz(doc *dom.Document, w io.Writer, tracer tracing.Trace) error {
	header, err := template.New("docTree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("node").Funcs(
		template.FuncMap{
			"shortstring": shortText,
			"label":       label,
		}).Parse(nodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*dom.Node]string, 1024)
	if err = nodes(doc.Root, w, dict, &gparams, tracer); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func nodes(n *dom.Node, w io.Writer, dict map[*dom.Node]string, gparams *graphParamsType,
	tracer tracing.Trace) error {
	//
	gparams.cnt++
	if gparams.cnt == 5000 {
		return nil // guard against runaway trees
	}
	if err := node(n, w, dict, gparams); err != nil {
		return err
	}
	tracer.Debugf("node = %v", n)
	kids := n.Children()
	if a := n.Aux(); a != nil {
		kids = append([]*dom.Node{a}, kids...)
	}
	for i, child := range kids {
		isAux := i == 0 && n.Aux() != nil
		if err := nodes(child, w, dict, gparams, tracer); err != nil {
			return err
		}
		if err := edge(n, child, isAux, w, dict, gparams); err != nil {
			return err
		}
	}
	return nil
}

func node(n *dom.Node, w io.Writer, dict map[*dom.Node]string, gparams *graphParamsType) error {
	name := dict[n]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[n] = name
	}
	return gparams.NodeTmpl.Execute(w, &cnode{N: n, Name: name, IsText: n.Kind == dom.KindText,
		IsBlock: n.IsBlock()})
}

// Helper structs
type cnode struct {
	N       *dom.Node
	Name    string
	IsText  bool
	IsBlock bool
}

type cedge struct {
	N1, N2 string
	Style  string
}

func edge(n1, n2 *dom.Node, aux bool, w io.Writer, dict map[*dom.Node]string,
	gparams *graphParamsType) error {
	//
	e := cedge{N1: dict[n1], N2: dict[n2]}
	if aux {
		e.Style = "style=dashed"
	}
	return gparams.EdgeTmpl.Execute(w, e)
}

func shortText(n *cnode) string {
	txt := n.N.Text
	s := "\"T \\\""
	if len(txt) > 10 {
		s += txt[:10] + "…\\\"\""
	} else {
		s += txt + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

func label(n *dom.Node) string {
	l := n.Kind.String()
	switch {
	case n.Kind == dom.KindHeading:
		l += fmt.Sprintf(" %d", n.Level)
	case n.Kind == dom.KindEmphasis:
		l += " " + string(n.Symbol)
	case n.URL != "":
		l += " → " + n.URL
	}
	if !n.Cmd.IsEmpty() {
		l += "\\n{" + n.Cmd.String() + "}"
	}
	return "\"" + strings.Replace(l, "\"", "\\\"", -1) + "\""
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`
const nodeTmpl = `{{ if .IsText }}
{{ .Name }}	[ label={{ shortstring . }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else if .IsBlock }}
{{ .Name }}	[ label={{ label .N }} shape=box style=filled fillcolor=lightblue3 ] ;
{{ else }}
{{ .Name }}	[ label={{ label .N }} shape=ellipse style=filled fillcolor=lightyellow ] ;
{{ end }}
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1 {{ .Style }}] ;
`
