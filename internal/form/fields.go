package form

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FieldType classifies a discovered form widget.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeRadio     FieldType = "radio"
	FieldTypeButton    FieldType = "button"
	FieldTypeSelect    FieldType = "select"
	FieldTypeSignature FieldType = "signature"
	FieldTypeUnknown   FieldType = "unknown"
)

// Field is one AcroForm widget on the template: its fully qualified
// name, its type, and the 1-based page it sits on.
type Field struct {
	Name string
	Type FieldType
	Page int
}

// DiscoverFields enumerates the template's AcroForm widgets in document
// order. Malformed fields are skipped; a template without an AcroForm
// yields an empty slice.
func DiscoverFields(templatePath string) ([]Field, error) {
	f, err := os.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	pages := pageNumbersByObject(ctx)

	var fields []Field
	err = walkFields(ctx, func(name string, dict types.Dict) {
		fields = append(fields, Field{
			Name: name,
			Type: fieldType(ctx, dict),
			Page: fieldPage(ctx, dict, pages),
		})
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// walkFields invokes fn for every named field dictionary in the
// AcroForm Fields array, recursing into kids that carry their own
// names.
func walkFields(ctx *model.Context, fn func(name string, dict types.Dict)) error {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil
	}
	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return nil
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return nil
	}
	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	for _, fieldRef := range fieldsArray {
		walkFieldTree(ctx, fieldRef, "", fn)
	}
	return nil
}

// walkFieldTree visits one field dictionary and its named descendants.
func walkFieldTree(ctx *model.Context, obj types.Object, parent string, fn func(name string, dict types.Dict)) {
	dict, err := ctx.DereferenceDict(obj)
	if err != nil || dict == nil {
		return
	}

	name := parent
	if nameObj, found := dict.Find("T"); found {
		if partial, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil && partial != "" {
			if parent != "" {
				name = parent + "." + partial
			} else {
				name = partial
			}
		}
	}

	if name != "" {
		fn(name, dict)
	}

	if kidsObj, found := dict.Find("Kids"); found {
		if kids, err := ctx.DereferenceArray(kidsObj); err == nil {
			for _, kid := range kids {
				kidDict, err := ctx.DereferenceDict(kid)
				if err != nil || kidDict == nil {
					continue
				}
				// Only descend into kids that are fields themselves;
				// bare widget annotations share the parent's name.
				if _, found := kidDict.Find("T"); found {
					walkFieldTree(ctx, kid, name, fn)
				}
			}
		}
	}
}

// fieldType determines the widget type from the FT entry, consulting
// the parent chain for inherited types and the Ff flags to split
// checkboxes from radios and pushbuttons.
func fieldType(ctx *model.Context, dict types.Dict) FieldType {
	ftObj, found := dict.Find("FT")
	if !found {
		if parentObj, found := dict.Find("Parent"); found {
			if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return fieldType(ctx, parentDict)
			}
		}
		return FieldTypeUnknown
	}

	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return FieldTypeUnknown
	}

	switch ftName {
	case "Btn":
		if flagsObj, found := dict.Find("Ff"); found {
			if flags, err := ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
				flagValue := *flags
				if (flagValue & (1 << 15)) != 0 { // Bit 16: Radio
					return FieldTypeRadio
				} else if (flagValue & (1 << 16)) != 0 { // Bit 17: Pushbutton
					return FieldTypeButton
				}
			}
		}
		return FieldTypeCheckbox
	case "Tx":
		return FieldTypeText
	case "Ch":
		return FieldTypeSelect
	case "Sig":
		return FieldTypeSignature
	default:
		return FieldTypeUnknown
	}
}

// pageNumbersByObject maps page-dictionary object numbers to 1-based
// page numbers so widget /P references can be resolved.
func pageNumbersByObject(ctx *model.Context) map[int]int {
	pages := make(map[int]int, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		ir, err := ctx.PageDictIndRef(pageNr)
		if err != nil || ir == nil {
			continue
		}
		pages[ir.ObjectNumber.Value()] = pageNr
	}
	return pages
}

// fieldPage resolves the page a field's widget sits on via its /P
// reference, falling back to the first kid's /P and then to page 1.
func fieldPage(ctx *model.Context, dict types.Dict, pages map[int]int) int {
	if pObj, found := dict.Find("P"); found {
		if ir, ok := pObj.(types.IndirectRef); ok {
			if pageNr, ok := pages[ir.ObjectNumber.Value()]; ok {
				return pageNr
			}
		}
	}
	if kidsObj, found := dict.Find("Kids"); found {
		if kids, err := ctx.DereferenceArray(kidsObj); err == nil && len(kids) > 0 {
			if kidDict, err := ctx.DereferenceDict(kids[0]); err == nil && kidDict != nil {
				if pObj, found := kidDict.Find("P"); found {
					if ir, ok := pObj.(types.IndirectRef); ok {
						if pageNr, ok := pages[ir.ObjectNumber.Value()]; ok {
							return pageNr
						}
					}
				}
			}
		}
	}
	return 1
}

// CheckboxGroups chunks the page's checkboxes into groups of four field
// names in document order, matching the TREC column layout [I, NI, NP,
// D]. An incomplete trailing chunk is dropped.
func CheckboxGroups(fields []Field, page int) [][]string {
	var names []string
	for _, f := range fields {
		if f.Page == page && f.Type == FieldTypeCheckbox {
			names = append(names, f.Name)
		}
	}

	var groups [][]string
	for i := 0; i+checkboxGroupSize <= len(names); i += checkboxGroupSize {
		groups = append(groups, names[i:i+checkboxGroupSize])
	}
	return groups
}

// TextFields returns the page's text field names in document order.
func TextFields(fields []Field, page int) []string {
	var names []string
	for _, f := range fields {
		if f.Page == page && f.Type == FieldTypeText {
			names = append(names, f.Name)
		}
	}
	return names
}
