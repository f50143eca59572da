// policy/migration/mock_gen.go
package migration

//go:generate mockgen -source=./migration.go -destination=./mocks/mock_store.go -package=mocks Store
