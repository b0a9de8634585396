// Package envelope defines the messages admitted to the live distribution
// bus: Snapshot, Delta and Event, sharing a common Header.
//
// The JSON field names are the interop contract:
//
//	{"type":"snapshot","dictionaryId":"hockey","dictionaryVersion":"1.0.0",
//	 "sourceId":"feed-a","seq":12,"ts":1718000000000,"values":{"K1":3}}
//
//	{"type":"delta", ..., "changes":[{"keyId":"K1","value":4,"ts":1718000000500}]}
//
//	{"type":"event", ..., "eventKeyId":"K_GOALS","payload":{"by":"Geno"},"value":1}
//
// Every message must pass Validate before it is applied; Decode checks the
// discriminator and the presence of required fields on raw JSON.
package envelope
