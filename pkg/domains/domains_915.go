package domains

// 915 MHz band plans

// fcc915 is the US 902-928 MHz ISM band plan
var fcc915 = &Domain{
	Name:         "FCC915",
	Description:  "US 915 MHz ISM band",
	FreqStartHz:  903500000,
	FreqStopHz:   926900000,
	ChannelCount: 40,
	SyncCenterHz: 915000000,
}

// au915 is the Australian 915-928 MHz band plan
var au915 = &Domain{
	Name:         "AU915",
	Description:  "Australia 915 MHz band",
	FreqStartHz:  915500000,
	FreqStopHz:   926900000,
	ChannelCount: 20,
	SyncCenterHz: 921000000,
}
