package resolver

// BuiltinNames is the pre-entered symbol table of spec §6.3. Types are
// attributed separately by the inferencer; the resolver only needs the
// names so that unqualified references resolve instead of producing an
// undefined-name diagnostic.
var BuiltinNames = []string{
	"print", "println", "len", "range", "input",
	"str", "int", "float", "bool", "type",
	"abs", "min", "max",
}

func populateBuiltins(global *Scope) {
	for _, name := range BuiltinNames {
		global.declare(name, &Symbol{Name: name, Kind: KindBuiltin})
	}
}
