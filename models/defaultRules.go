package models

// System default rule sets, one per (record kind, level). These are explicit
// configuration values handed to the merge step on every validation call;
// nothing here is mutable process state. Clients overlay their stored
// overrides on top, and condition text falls back to these wordings when an
// override leaves it blank.

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }

// GetDefaultRules returns a fresh copy of the defaults for a kind/level so
// callers can never mutate the canonical set. Nil means no rule set exists.
func GetDefaultRules(kind RecordKind, level int) FieldRules {
	var src FieldRules
	switch kind {
	case RecordKindOrder:
		switch level {
		case 1:
			src = defaultOrderLevel1()
		case 2:
			src = defaultOrderLevel2()
		case 3:
			src = defaultOrderLevel3()
		}
	case RecordKindExecution:
		switch level {
		case 1:
			src = defaultExecutionLevel1()
		case 2:
			src = defaultExecutionLevel2()
		case 3:
			src = defaultExecutionLevel3()
		}
	}
	return src
}

func defaultOrderLevel1() FieldRules {
	return FieldRules{
		"orderID":              {Enabled: true, Required: true, Type: FieldTypeString, Min: f64(1), Max: f64(64)},
		"basketID":             {Enabled: true, Type: FieldTypeString, Max: f64(64)},
		"routedOrderID":        {Enabled: true, Type: FieldTypeString, Max: f64(64)},
		"orderAction":          {Enabled: true, Required: true, Type: FieldTypeEnum, Values: []string{"1", "2", "3", "4", "5", "6"}},
		"orderDestination":     {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"orderQuantity":        {Enabled: true, Required: true, Type: FieldTypeDecimal, Precision: iptr(18), Scale: iptr(4)},
		"orderPrice":           {Enabled: true, Type: FieldTypeDecimal, Precision: iptr(18), Scale: iptr(8)},
		"limitPrice":           {Enabled: true, Type: FieldTypeDecimal, Precision: iptr(18), Scale: iptr(8)},
		"orderType":            {Enabled: true, Required: true, Type: FieldTypeEnum, Values: []string{"1", "2", "3", "4"}},
		"timeInForce":          {Enabled: true, Type: FieldTypeEnum, Values: []string{"0", "1", "3", "4", "6"}},
		"side":                 {Enabled: true, Required: true, Type: FieldTypeEnum, Values: []string{"1", "2", "5"}},
		"symbol":               {Enabled: true, Required: true, Type: FieldTypeString, Min: f64(1), Max: f64(32)},
		"currency":             {Enabled: true, Type: FieldTypeString, Regex: `^[A-Z]{3}$`},
		"accountNo":            {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"clientCode":           {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"executingEntity":      {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"bookingEntity":        {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"tradingEntity":        {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"eventTimestamp":       {Enabled: true, Required: true, Type: FieldTypeString, Max: f64(40)},
		"startTime":            {Enabled: true, Type: FieldTypeString, Max: f64(40)},
		"expiryDate":           {Enabled: true, Type: FieldTypeDate},
		"orderCapacity":        {Enabled: true, Type: FieldTypeEnum, Values: []string{"1", "2", "3", "4"}},
		"handlingInstruction":  {Enabled: true, Type: FieldTypeString, Max: f64(8)},
		"manualOrderIndicator": {Enabled: true, Type: FieldTypeEnum, Values: []string{"1", "2"}},
		"traderEmail":          {Enabled: true, Type: FieldTypeString, Format: FormatEmail, Max: f64(128)},
	}
}

func defaultOrderLevel2() FieldRules {
	return FieldRules{
		"orderQuantity":        {Enabled: true, Condition: "orderQuantity should not be null and must be greater than 0"},
		"orderPrice":           {Enabled: true, Condition: "orderPrice should be null or must be greater than 0"},
		"limitPrice":           {Enabled: true, Condition: "limitPrice should not be null when orderType in (2)"},
		"timeInForce":          {Enabled: true, Condition: "timeInForce must be in (0,1,3,4,6)"},
		"expiryDate":           {Enabled: true, Condition: "expiryDate should not be null when timeInForce in (6)"},
		"basketID":             {Enabled: true, Condition: "basketID should be null or must be not equal to orderID"},
		"routedOrderID":        {Enabled: true, Condition: "routedOrderID should only be populated when orderAction in (5,6) and orderDestination is populated"},
		"orderDestination":     {Enabled: true, Condition: "orderDestination should not be null when orderAction in (5,6)"},
		"orderCapacity":        {Enabled: true, Condition: "orderCapacity must be in (1-4)"},
		"manualOrderIndicator": {Enabled: true, Condition: "manualOrderIndicator must be in (1,2)"},
		"handlingInstruction":  {Enabled: true, Condition: "handlingInstruction should be null when manualOrderIndicator in (2)"},
		"clientCode":           {Enabled: true, Condition: "clientCode should not be null and must be the same throughout the life cycle of an order"},
		"eventTimestamp":       {Enabled: true, Condition: "eventTimestamp must be in nano seconds"},
		"startTime":            {Enabled: true, Condition: "startTime must be in nano seconds and should not be less than eventTimestamp"},
	}
}

func defaultOrderLevel3() FieldRules {
	return FieldRules{
		"orderDestination": {Enabled: true, Condition: "orderDestination should not be null when orderAction in (5,6)"},
		"routedOrderID":    {Enabled: true, Condition: ConditionUnset},
		"executingEntity":  {Enabled: true, Condition: ConditionUnset},
		"bookingEntity":    {Enabled: true, Condition: ConditionUnset},
		"tradingEntity":    {Enabled: true, Condition: ConditionUnset},
		"accountNo":        {Enabled: true, Condition: ConditionUnset},
		"currency":         {Enabled: true, Condition: ConditionUnset},
		"symbol":           {Enabled: true, Condition: ConditionUnset},
		"startTime":        {Enabled: true, Condition: "startTime must be in nano seconds and should not be less than eventTimestamp"},
	}
}

func defaultExecutionLevel1() FieldRules {
	return FieldRules{
		"executionID":              {Enabled: true, Required: true, Type: FieldTypeString, Min: f64(1), Max: f64(64)},
		"orderID":                  {Enabled: true, Required: true, Type: FieldTypeString, Min: f64(1), Max: f64(64)},
		"executionAction":          {Enabled: true, Required: true, Type: FieldTypeEnum, Values: []string{"1", "2", "3", "5", "6"}},
		"executionDestination":     {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"executionQuantity":        {Enabled: true, Required: true, Type: FieldTypeDecimal, Precision: iptr(18), Scale: iptr(4)},
		"executionPrice":           {Enabled: true, Required: true, Type: FieldTypeDecimal, Precision: iptr(18), Scale: iptr(8)},
		"leavesQuantity":           {Enabled: true, Type: FieldTypeDecimal, Precision: iptr(18), Scale: iptr(4)},
		"cumulativeQuantity":       {Enabled: true, Type: FieldTypeDecimal, Precision: iptr(18), Scale: iptr(4)},
		"executionCapacity":        {Enabled: true, Type: FieldTypeEnum, Values: []string{"1", "2", "3"}},
		"executionManualIndicator": {Enabled: true, Type: FieldTypeEnum, Values: []string{"1", "2"}},
		"contraBroker":             {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"side":                     {Enabled: true, Required: true, Type: FieldTypeEnum, Values: []string{"1", "2", "5"}},
		"symbol":                   {Enabled: true, Required: true, Type: FieldTypeString, Min: f64(1), Max: f64(32)},
		"currency":                 {Enabled: true, Type: FieldTypeString, Regex: `^[A-Z]{3}$`},
		"accountNo":                {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"executingEntity":          {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"bookingEntity":            {Enabled: true, Type: FieldTypeString, Max: f64(32)},
		"tradeDate":                {Enabled: true, Required: true, Type: FieldTypeDate},
		"settlementDate":           {Enabled: true, Type: FieldTypeDate},
		"eventTimestamp":           {Enabled: true, Required: true, Type: FieldTypeString, Max: f64(40)},
		"executionTimestamp":       {Enabled: true, Required: true, Type: FieldTypeString, Max: f64(40)},
	}
}

func defaultExecutionLevel2() FieldRules {
	return FieldRules{
		"executionQuantity":        {Enabled: true, Condition: "executionQuantity should not be null and must be greater than 0"},
		"executionPrice":           {Enabled: true, Condition: "executionPrice should not be null and must be greater than or equal to 0"},
		"leavesQuantity":           {Enabled: true, Condition: "leavesQuantity should be null or must be greater than or equal to 0"},
		"cumulativeQuantity":       {Enabled: true, Condition: "cumulativeQuantity must be greater than or equal to executionQuantity"},
		"executionManualIndicator": {Enabled: true, Condition: "executionManualIndicator must be in (1,2)"},
		"executionCapacity":        {Enabled: true, Condition: "executionCapacity must be in (1-3)"},
		"contraBroker":             {Enabled: true, Condition: "contraBroker should not be null when executionCapacity in (2)"},
		"executionDestination":     {Enabled: true, Condition: "executionDestination should not be null when executionAction in (5,6)"},
		"eventTimestamp":           {Enabled: true, Condition: "eventTimestamp must be in nano seconds"},
		"executionTimestamp":       {Enabled: true, Condition: "executionTimestamp must be in nano seconds and should not be less than eventTimestamp"},
	}
}

func defaultExecutionLevel3() FieldRules {
	return FieldRules{
		"executionDestination": {Enabled: true, Condition: "executionDestination should not be null when executionAction in (5,6)"},
		"executingEntity":      {Enabled: true, Condition: ConditionUnset},
		"bookingEntity":        {Enabled: true, Condition: ConditionUnset},
		"accountNo":            {Enabled: true, Condition: ConditionUnset},
		"currency":             {Enabled: true, Condition: ConditionUnset},
		"symbol":               {Enabled: true, Condition: ConditionUnset},
		"executionTimestamp":   {Enabled: true, Condition: "executionTimestamp must be in nano seconds and should not be less than eventTimestamp"},
	}
}
