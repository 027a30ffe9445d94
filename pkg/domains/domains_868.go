package domains

// 868/866 MHz band plans

// eu868 is the European 863-870 MHz SRD band plan
var eu868 = &Domain{
	Name:         "EU868",
	Description:  "EU 868 MHz SRD band",
	FreqStartHz:  865275000,
	FreqStopHz:   869575000,
	ChannelCount: 13,
	SyncCenterHz: 868000000,
}

// in866 is the Indian 865-867 MHz band plan
var in866 = &Domain{
	Name:         "IN866",
	Description:  "India 866 MHz band",
	FreqStartHz:  865375000,
	FreqStopHz:   866950000,
	ChannelCount: 4,
	SyncCenterHz: 866000000,
}
