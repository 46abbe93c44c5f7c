package database

import "embed"

// Migrations содержит goose-миграции схемы, вшитые в бинарник
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
