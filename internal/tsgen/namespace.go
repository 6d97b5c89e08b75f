package tsgen

import (
	"unicode"
	"unicode/utf8"

	"github.com/hanpama/graphqlgen/internal/ir"
)

const (
	infoType       = "GraphQLResolveInfo"
	argsPrefix     = "Args"
	resolverSuffix = "Resolver"
)

// NamespaceName returns the namespace holding the resolver types of typeName.
func NamespaceName(typeName string) string { return typeName + "Resolvers" }

// ArgsName returns the argument interface name of a field.
func ArgsName(fieldName string) string { return argsPrefix + capitalize(fieldName) }

// ResolverName returns the resolver function type name of a field.
func ResolverName(fieldName string) string { return capitalize(fieldName) + resolverSuffix }

// RenderNamespace builds the namespace for one object type: default
// resolvers, input interfaces, argument interfaces, resolver function types and
// the aggregate Type interface, in that order.
func RenderNamespace(typ *ir.Type, idx *Index, defaults []DefaultResolver, models ModelMap, ctx *Context) *Namespace {
	ns := &Namespace{Name: NamespaceName(typ.Name)}
	parent := models.ModelName(typ.Name)

	ns.Members = append(ns.Members, renderDefaultResolvers(defaults, parent))
	for _, iface := range renderInputInterfaces(typ, idx, models) {
		ns.Members = append(ns.Members, iface)
	}
	for _, field := range typ.Fields {
		if len(field.Arguments) > 0 {
			ns.Members = append(ns.Members, renderArgsInterface(field, models))
		}
	}
	for _, field := range typ.Fields {
		ns.Members = append(ns.Members, &FuncType{
			Name:      ResolverName(field.Name),
			Signature: resolverSignature(field, parent, models, ctx),
		})
	}

	resolvers := &Interface{Name: "Type"}
	for _, field := range typ.Fields {
		resolvers.Properties = append(resolvers.Properties, &Property{
			Name:      field.Name,
			Signature: resolverSignature(field, parent, models, ctx),
		})
	}
	ns.Members = append(ns.Members, resolvers)
	return ns
}

func renderDefaultResolvers(defaults []DefaultResolver, parent string) *ObjectConst {
	obj := &ObjectConst{Name: "defaultResolvers"}
	for _, d := range defaults {
		obj.Entries = append(obj.Entries, &Entry{Key: d.FieldName, Value: resolverBody(d, parent)})
	}
	return obj
}

// renderInputInterfaces emits one interface per associated input name,
// repeats included, then any input types reachable only through the fields
// of those inputs.
func renderInputInterfaces(typ *ir.Type, idx *Index, models ModelMap) []*Interface {
	var out []*Interface
	emitted := make(map[string]bool)
	var queue []string
	for _, name := range idx.InputsFor(typ.Name) {
		input := idx.InputTypes[name]
		if input == nil {
			continue
		}
		out = append(out, renderInputInterface(input, models))
		if !emitted[name] {
			emitted[name] = true
			queue = append(queue, name)
		}
	}
	for len(queue) > 0 {
		input := idx.InputTypes[queue[0]]
		queue = queue[1:]
		for _, field := range input.Fields {
			if !field.Type.IsInput() || emitted[field.Type.Name] {
				continue
			}
			nested := idx.InputTypes[field.Type.Name]
			if nested == nil {
				continue
			}
			emitted[nested.Name] = true
			queue = append(queue, nested.Name)
			out = append(out, renderInputInterface(nested, models))
		}
	}
	return out
}

func renderInputInterface(input *ir.Type, models ModelMap) *Interface {
	iface := &Interface{Name: input.Name}
	for _, field := range input.Fields {
		iface.Properties = append(iface.Properties, &Property{
			Name: field.Name,
			Type: printInputFieldType(field.Type, models),
		})
	}
	return iface
}

func renderArgsInterface(field *ir.Field, models ModelMap) *Interface {
	iface := &Interface{Name: ArgsName(field.Name)}
	for _, arg := range field.Arguments {
		iface.Properties = append(iface.Properties, &Property{
			Name: arg.Name,
			Type: PrintType(arg.Type, models),
		})
	}
	return iface
}

func resolverSignature(field *ir.Field, parent string, models ModelMap, ctx *Context) *Signature {
	args := emptyType
	if len(field.Arguments) > 0 {
		args = ArgsName(field.Name)
	}
	ret := PrintType(field.Type, models)
	return &Signature{
		Params: []*Param{
			{Name: "parent", Type: parent},
			{Name: "args", Type: args},
			{Name: "ctx", Type: contextName(ctx)},
			{Name: "info", Type: infoType},
		},
		Returns: ret + " | Promise<" + ret + ">",
	}
}

// capitalize upper-cases the first letter and keeps the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
