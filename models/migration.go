package models

import (
	"log"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Batch{},
		&Order{}, &Execution{},
		&Validation{}, &ValidationError{},
		&ClientRuleSet{},
		&BrokerDealer{}, &FirmEntity{}, &AccountMapping{}, &CurrencyCode{}, &InstrumentMapping{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
