// Command wlgen renders wlp protocol bindings from a wayland protocol XML
// description.
//
//	wlgen -in /usr/share/wayland/wayland.xml -out ../wlp/wayland.go \
//		-interfaces wl_display,wl_registry,wl_callback -since 1
//
// Requests and events newer than -since are left out, and so are requests
// creating objects of interfaces that are not generated.
package main

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/xml"
	"flag"
	"fmt"
	"go/format"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/serenize/snaker"
	"github.com/sirupsen/logrus"
)

//go:embed wlp.gotmpl
var wlpTemplate string

type Description struct {
	Summary string `xml:"summary,attr"`
	Text    string `xml:",chardata"`
}

type Request struct {
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr"`
	Since       string       `xml:"since,attr"`
	Description *Description `xml:"description"`
	Args        []*Arg       `xml:"arg"`
}

type Event struct {
	Name        string       `xml:"name,attr"`
	Since       string       `xml:"since,attr"`
	Description *Description `xml:"description"`
	Args        []*Arg       `xml:"arg"`
}

type Enum struct {
	Name        string       `xml:"name,attr"`
	Since       string       `xml:"since,attr"`
	Bitfield    string       `xml:"bitfield,attr"`
	Description *Description `xml:"description"`
	Entries     []*Entry     `xml:"entry"`
}

type Arg struct {
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr"`
	Summary     string       `xml:"summary,attr"`
	Interface   string       `xml:"interface,attr"`
	AllowNull   string       `xml:"allow-null,attr"`
	Enum        string       `xml:"enum,attr"`
	Description *Description `xml:"description"`
}

type Entry struct {
	Name        string       `xml:"name,attr"`
	Value       string       `xml:"value,attr"`
	Summary     string       `xml:"summary,attr"`
	Since       string       `xml:"since,attr"`
	Description *Description `xml:"description"`
}

type Interface struct {
	Name        string       `xml:"name,attr"`
	Version     string       `xml:"version,attr"`
	Description *Description `xml:"description"`
	Requests    []*Request   `xml:"request"`
	Events      []*Event     `xml:"event"`
	Enums       []*Enum      `xml:"enum"`
}

type Protocol struct {
	Name        string       `xml:"name,attr"`
	Copyright   string       `xml:"copyright"`
	Description *Description `xml:"description"`
	Interfaces  []*Interface `xml:"interface"`
}

func parse(raw []byte) (*Protocol, error) {
	p := &Protocol{}
	err := xml.Unmarshal(raw, p)
	return p, errors.Wrap(err, "unable to parse xml")
}

// Options select what is generated.
type Options struct {
	// Source is recorded in the generated header.
	Source string
	// Interfaces to generate, in protocol order. Empty means all.
	Interfaces []string
	// Since is the highest interface version whose requests, events and
	// enum entries are included. Zero means all.
	Since int
}

// File is the data the template renders.
type File struct {
	Source     string
	NeedsOS    bool
	Interfaces []*GenInterface
}

type GenInterface struct {
	Name     string
	Type     string
	Doc      string
	Enums    [][]GenEntry
	Events   []*GenEvent
	Requests []*GenRequest

	ListenerDoc    string
	EventsHaveArgs bool
	// LocalDestroy is set when the protocol has no destructor, so Destroy
	// only drops the client side.
	LocalDestroy bool
}

type GenEntry struct {
	Const, Value, Summary string
}

type GenEvent struct {
	Name   string
	Const  string
	Opcode int
	Doc    string
	Params string
	Decode []string
	Call   string
}

type GenRequest struct {
	Name   string
	Const  string
	Opcode int
	Doc    string
	Params string
	Args   string
	FD     string

	NewIface       string
	NewType        string
	NewHasListener bool
	Destructor     bool
}

// InterfaceName is the Go type name for a protocol interface.
func InterfaceName(name string) string {
	return snaker.SnakeToCamel(strings.TrimPrefix(name, "wl_"))
}

func ArgName(arg *Arg) string {
	name := snaker.SnakeToCamelLower(strings.TrimSuffix(arg.Name, "_"))
	switch name {
	case "interface":
		name = "iface"
	case "type", "func", "range", "map":
		name += "_"
	}
	return name
}

// DescriptionToComment turns protocol prose into a Go comment block.
func DescriptionToComment(desc *Description) string {
	if desc == nil {
		return ""
	}
	buf := &bytes.Buffer{}
	blank := false
	scanner := bufio.NewScanner(strings.NewReader(strings.TrimSpace(desc.Text)))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			blank = true
			continue
		}
		if blank && buf.Len() > 0 {
			buf.WriteString("//\n")
		}
		blank = false
		buf.WriteString("// ")
		buf.Write(line)
		buf.WriteString("\n")
	}
	return buf.String()
}

func goType(arg *Arg) (string, error) {
	switch arg.Type {
	case "int":
		return "int32", nil
	case "uint", "object":
		return "uint32", nil
	case "string":
		return "string", nil
	case "fd":
		return "*os.File", nil
	}
	return "", errors.Errorf("argument %s: type %s is not supported", arg.Name, arg.Type)
}

func decodeCall(arg *Arg) (string, error) {
	switch arg.Type {
	case "int":
		return "d.Int32()", nil
	case "uint", "object", "new_id":
		return "d.Uint32()", nil
	case "string":
		return "d.String()", nil
	}
	return "", errors.Errorf("event argument %s: type %s is not supported", arg.Name, arg.Type)
}

func since(s string) int {
	if s == "" {
		return 1
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return v
}

// Build selects and converts the protocol for rendering.
func Build(p *Protocol, opts Options) (*File, error) {
	wanted := make(map[string]bool)
	for _, name := range opts.Interfaces {
		wanted[name] = true
	}
	include := func(name string) bool {
		return len(wanted) == 0 || wanted[name]
	}
	inRange := func(s string) bool {
		return opts.Since == 0 || since(s) <= opts.Since
	}

	found := make(map[string]bool)
	f := &File{Source: opts.Source}
	for _, iface := range p.Interfaces {
		if !include(iface.Name) {
			continue
		}
		found[iface.Name] = true
		g := &GenInterface{
			Name: iface.Name,
			Type: InterfaceName(iface.Name),
			Doc:  DescriptionToComment(iface.Description),
		}

		for _, enum := range iface.Enums {
			if !inRange(enum.Since) {
				continue
			}
			var entries []GenEntry
			for _, e := range enum.Entries {
				if !inRange(e.Since) {
					continue
				}
				entries = append(entries, GenEntry{
					Const:   g.Type + snaker.SnakeToCamel(enum.Name) + snaker.SnakeToCamel(e.Name),
					Value:   e.Value,
					Summary: e.Summary,
				})
			}
			if len(entries) > 0 {
				g.Enums = append(g.Enums, entries)
			}
		}

		for op, ev := range iface.Events {
			if !inRange(ev.Since) {
				continue
			}
			name := snaker.SnakeToCamel(ev.Name)
			params := []string{fmt.Sprintf("%s *%s", snaker.SnakeToCamelLower(strings.TrimPrefix(iface.Name, "wl_")), g.Type)}
			call := []string{"this"}
			ge := &GenEvent{
				Name:   name,
				Const:  "opCode" + g.Type + name,
				Opcode: op,
				Doc:    DescriptionToComment(ev.Description),
			}
			for _, arg := range ev.Args {
				dec, err := decodeCall(arg)
				if err != nil {
					return nil, errors.Wrapf(err, "%s.%s", iface.Name, ev.Name)
				}
				typ := "uint32"
				if arg.Type == "int" {
					typ = "int32"
				} else if arg.Type == "string" {
					typ = "string"
				}
				params = append(params, ArgName(arg)+" "+typ)
				call = append(call, ArgName(arg))
				ge.Decode = append(ge.Decode, ArgName(arg)+" := "+dec)
			}
			ge.Params = strings.Join(params, ", ")
			ge.Call = strings.Join(call, ", ")
			if len(ge.Decode) > 0 {
				g.EventsHaveArgs = true
			}
			g.Events = append(g.Events, ge)
		}

		g.ListenerDoc = listenerDoc(g)

		hasDestructor := false
	requests:
		for op, rq := range iface.Requests {
			if !inRange(rq.Since) {
				continue
			}
			name := snaker.SnakeToCamel(rq.Name)
			gr := &GenRequest{
				Name:       name,
				Const:      "opCode" + g.Type + name,
				Opcode:     op,
				Doc:        DescriptionToComment(rq.Description),
				Destructor: rq.Type == "destructor",
			}
			var params, args []string
			for _, arg := range rq.Args {
				switch {
				case arg.Type == "new_id" && arg.Interface == "":
					params = append(params, "iface string", "version uint32", ArgName(arg)+" uint32")
					args = append(args, "iface", "version", ArgName(arg))
				case arg.Type == "new_id":
					if !include(arg.Interface) {
						continue requests
					}
					gr.NewIface = arg.Interface
					gr.NewType = InterfaceName(arg.Interface)
					args = append(args, "ret.i")
				case arg.Type == "fd":
					gr.FD = ArgName(arg)
					params = append(params, ArgName(arg)+" *os.File")
					f.NeedsOS = true
				default:
					typ, err := goType(arg)
					if err != nil {
						return nil, errors.Wrapf(err, "%s.%s", iface.Name, rq.Name)
					}
					params = append(params, ArgName(arg)+" "+typ)
					args = append(args, ArgName(arg))
				}
			}
			if gr.NewIface != "" {
				gr.NewHasListener = hasEvents(p, gr.NewIface, inRange)
				if gr.NewHasListener {
					params = append([]string{"l " + gr.NewType + "Listener"}, params...)
				}
			}
			gr.Params = strings.Join(params, ", ")
			gr.Args = strings.Join(args, ", ")
			if gr.Destructor {
				hasDestructor = true
			}
			g.Requests = append(g.Requests, gr)
		}
		g.LocalDestroy = !hasDestructor && iface.Name != "wl_display"
		f.Interfaces = append(f.Interfaces, g)
	}
	for _, name := range opts.Interfaces {
		if !found[name] {
			return nil, errors.Errorf("interface %s not found in protocol", name)
		}
	}
	return f, nil
}

func listenerDoc(g *GenInterface) string {
	if len(g.Events) == 0 {
		return ""
	}
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "// %s Events\n", g.Type)
	for _, ev := range g.Events {
		fmt.Fprintf(buf, "//\n// %s\n%s", ev.Name, ev.Doc)
	}
	return buf.String()
}

func hasEvents(p *Protocol, name string, inRange func(string) bool) bool {
	for _, iface := range p.Interfaces {
		if iface.Name != name {
			continue
		}
		for _, ev := range iface.Events {
			if inRange(ev.Since) {
				return true
			}
		}
	}
	return false
}

func genTemplate(templateText string) *template.Template {
	return template.Must(template.New("wlp").Parse(templateText))
}

// Generate renders and gofmts the bindings for p.
func Generate(p *Protocol, opts Options) ([]byte, error) {
	f, err := Build(p, opts)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := genTemplate(wlpTemplate).ExecuteTemplate(buf, "root", f); err != nil {
		return nil, errors.Wrap(err, "unable to execute template")
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), errors.Wrap(err, "generated code does not compile")
	}
	return out, nil
}

func main() {
	in := flag.String("in", "/usr/share/wayland/wayland.xml", "protocol description")
	out := flag.String("out", "", "output file (default stdout)")
	ifaces := flag.String("interfaces", "", "comma separated interfaces to generate (default all)")
	sinceFlag := flag.Int("since", 0, "highest version to include (default all)")
	flag.Parse()

	log := logrus.WithField("component", "wlgen")
	raw, err := ioutil.ReadFile(*in)
	if err != nil {
		log.WithError(err).Fatal("unable to read protocol")
	}
	p, err := parse(raw)
	if err != nil {
		log.WithError(err).Fatal("unable to parse protocol")
	}
	opts := Options{Source: filepath.Base(*in), Since: *sinceFlag}
	if *ifaces != "" {
		opts.Interfaces = strings.Split(*ifaces, ",")
	}
	src, err := Generate(p, opts)
	if err != nil {
		log.WithError(err).Fatal("generation failed")
	}
	if *out == "" {
		os.Stdout.Write(src)
		return
	}
	if err := ioutil.WriteFile(*out, src, 0644); err != nil {
		log.WithError(err).Fatal("unable to write output")
	}
	log.WithField("out", *out).Info("bindings written")
}
