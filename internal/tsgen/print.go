package tsgen

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// Print serializes f. The banner is followed by a blank line, header nodes are written one per line, body nodes are
// separated by blank lines.
func Print(f *File) string {
	p := &printer{}
	if f.Banner != "" {
		p.line("// %s", f.Banner)
		p.blank()
	}
	for _, n := range f.Header {
		p.node(n)
	}
	for _, n := range f.Body {
		p.blank()
		p.node(n)
	}
	return p.b.String()
}

type printer struct {
	b     strings.Builder
	depth int
}

func (p *printer) line(format string, args ...any) {
	for range p.depth {
		p.b.WriteString(indentUnit)
	}
	if len(args) == 0 {
		p.b.WriteString(format)
	} else {
		fmt.Fprintf(&p.b, format, args...)
	}
	p.b.WriteByte('\n')
}

func (p *printer) blank() { p.b.WriteByte('\n') }

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case *Import:
		p.line("import { %s } from '%s'", strings.Join(n.Names, ", "), n.From)
	case *TypeAlias:
		if n.Export {
			p.line("export type %s = %s", n.Name, n.Type)
		} else {
			p.line("type %s = %s", n.Name, n.Type)
		}
	case *Namespace:
		p.namespace(n)
	case *Interface:
		p.iface(n)
	case *FuncType:
		p.signature("export type "+n.Name+" = ", n.Signature)
	case *ObjectConst:
		p.object(n)
	default:
		panic(fmt.Sprintf("tsgen: unknown node %T", n))
	}
}

func (p *printer) namespace(n *Namespace) {
	p.line("export namespace %s {", n.Name)
	p.depth++
	for i, m := range n.Members {
		if i > 0 {
			p.blank()
		}
		p.node(m)
	}
	p.depth--
	p.line("}")
}

func (p *printer) iface(n *Interface) {
	if len(n.Properties) == 0 {
		p.line("export interface %s {}", n.Name)
		return
	}
	p.line("export interface %s {", n.Name)
	p.depth++
	for _, prop := range n.Properties {
		if prop.Signature != nil {
			p.signature(prop.Name+": ", prop.Signature)
			continue
		}
		p.line("%s: %s", prop.Name, prop.Type)
	}
	p.depth--
	p.line("}")
}

// signature writes a multi-line arrow function type with trailing commas.
func (p *printer) signature(prefix string, sig *Signature) {
	if len(sig.Params) == 0 {
		p.line("%s() => %s", prefix, sig.Returns)
		return
	}
	p.line("%s(", prefix)
	p.depth++
	for _, param := range sig.Params {
		p.line("%s: %s,", param.Name, param.Type)
	}
	p.depth--
	p.line(") => %s", sig.Returns)
}

func (p *printer) object(n *ObjectConst) {
	if len(n.Entries) == 0 {
		p.line("export const %s = {}", n.Name)
		return
	}
	p.line("export const %s = {", n.Name)
	p.depth++
	for _, e := range n.Entries {
		p.line("%s: %s,", e.Key, e.Value)
	}
	p.depth--
	p.line("}")
}
