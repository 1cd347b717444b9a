// Package blocks is the block type catalog and the dispatch layer over it.
//
// Every block type is described by a Descriptor built around a concrete
// content record (Hero, Text, Gallery, ...). The Registry maps type tags to
// descriptors and is constructed explicitly with NewCatalogRegistry, then
// shared by reference with the editor, the renderer and the importers.
//
// Two capabilities are dispatched through the registry:
//
//   - Renderer.Render produces the HTML view of a block. Unknown tags and
//     undecodable content render as an error element for that block only.
//   - Registry.Edit produces the edit Form of a block. Form.Change validates a
//     field value and reports a partial Update to the caller, which merges it
//     with Registry.Apply.
//
// Content updates merge by key: only the patched fields change, and keys
// that are not fields of the content record are rejected with ErrUnknownField.
package blocks

// catalogModules lists the built-in block groups in palette order.
var catalogModules = []Module{
	heroModule{},
	textModule{},
	contentModule{},
	mediaModule{},
	layoutModule{},
}
