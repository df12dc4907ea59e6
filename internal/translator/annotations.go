package translator

import (
	"github.com/simonzhangsm/capnproto/internal/decl"
	"github.com/simonzhangsm/capnproto/internal/diag"
)

// checkAnnotationTarget rejects an annotation application against a
// declaration kind the annotation does not list as a target.
// annotationDecl is the annotation's own declaration, already resolved by
// the caller.
func checkAnnotationTarget(r diag.Reporter, annotationDecl decl.Decl, applied decl.Applied, target decl.Kind) {
	if annotationDecl.Targets(target) {
		return
	}
	diag.Errorf(r, diag.ValAnnotationTargetNotAllowed, applied.Span,
		"annotation %q may not target %s", annotationDecl.Name(), target)
}

// checkAnnotations runs checkAnnotationTarget over every annotation
// applied to d, resolving each by name through resolver.
func checkAnnotations(r diag.Reporter, resolver decl.Resolver, decls map[string]decl.Decl, d decl.Decl, target decl.Kind) {
	for _, applied := range d.Annotations() {
		kind, _, ok := resolver.Resolve(applied.Name)
		if !ok || kind != decl.KindAnnotation {
			diag.Errorf(r, diag.ValAnnotationRefNotAnnotation, applied.Span,
				"%q does not name an annotation", applied.Name)
			continue
		}
		annotationDecl, ok := decls[applied.Name]
		if !ok {
			continue
		}
		checkAnnotationTarget(r, annotationDecl, applied, target)
	}
}
