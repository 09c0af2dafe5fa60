// Package err provides the coded error type used across the repository.
//
// Packages create errors with New, tagging them with their package name, an
// operation and one of the Code* constants:
//
//	const pkgName = "index"
//
//	func duplicate(name string) error {
//	    return err.New(pkgName, err.CodeDuplicateFile, "add",
//	        fmt.Sprintf("File %s already added", name), nil)
//	}
//
// Callers branch on the failure kind without caring which layer produced it:
//
//	if err.IsCode(e, err.CodeNotInitialized) {
//	    // suggest running init
//	}
//
// Message is the user-facing text; UserMessage digs it out of a wrap chain.
package err
