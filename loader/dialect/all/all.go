package all

import (
	// Import all the dialects so they register themselves
	_ "github.com/sflanaga/csvtolite/loader/dialect/mysql"
	_ "github.com/sflanaga/csvtolite/loader/dialect/postgres"
	_ "github.com/sflanaga/csvtolite/loader/dialect/sqlite"
)
