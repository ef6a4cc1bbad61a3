// Package repotests contains the contract test suite for the repository
// resource of the server under test: create, read, update, delete, and the
// lazy download action.
//
// The assumptions explored here have the following dependencies:
//
//	It is possible to create a repository.
//	├── It is impossible to create a repository with a duplicate ID
//	│   or other invalid attributes.
//	├── It is possible to read a repository.
//	├── It is possible to update a repository.
//	├── It is possible to delete a repository.
//	└── It is possible to trigger a lazy download for a repository.
//
// Each scenario owns the repositories it creates: creation registers a
// teardown delete on the scenario's scope, which runs on every exit path
// including assertion failures.
package repotests
