// Package assetref validates and resolves URI references found inside
// project asset files.
//
// A reference is resolved against the synthetic [ProjectScheme], whose root
// is the project's top-level directory:
//
//   - "/UI/main.uss" is root-relative and always starts at the project root.
//   - "project:///Assets/UI/main.uss" names a project path explicitly.
//   - "main.uss" and "../Shared/common.uss" are relative to the file that
//     contains the reference.
//
// Any other scheme, a malformed reference, or a path with no file behind it
// is reported as a [*ValidationError] whose [Kind] tells the failures apart.
//
//	r := assetref.New()
//	p, err := r.Resolve("Assets/UI/main.uss", "../Shared/common.uss")
//	switch assetref.KindOf(err) {
//	case assetref.KindOK:
//		// p == "Assets/Shared/common.uss"
//	case assetref.KindInvalidProjectPath:
//		// the file does not exist
//	}
package assetref
