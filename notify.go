package ikescan

// Notify message types from RFC 2408 3.14.1. Indexed by type value 0..30.
var notificationMsg = [...]string{
	"UNSPECIFIED",                // 0
	"INVALID-PAYLOAD-TYPE",       // 1
	"DOI-NOT-SUPPORTED",          // 2
	"SITUATION-NOT-SUPPORTED",    // 3
	"INVALID-COOKIE",             // 4
	"INVALID-MAJOR-VERSION",      // 5
	"INVALID-MINOR-VERSION",      // 6
	"INVALID-EXCHANGE-TYPE",      // 7
	"INVALID-FLAGS",              // 8
	"INVALID-MESSAGE-ID",         // 9
	"INVALID-PROTOCOL-ID",        // 10
	"INVALID-SPI",                // 11
	"INVALID-TRANSFORM-ID",       // 12
	"ATTRIBUTES-NOT-SUPPORTED",   // 13
	"NO-PROPOSAL-CHOSEN",         // 14
	"BAD-PROPOSAL-SYNTAX",        // 15
	"PAYLOAD-MALFORMED",          // 16
	"INVALID-KEY-INFORMATION",    // 17
	"INVALID-ID-INFORMATION",     // 18
	"INVALID-CERT-ENCODING",      // 19
	"INVALID-CERTIFICATE",        // 20
	"CERT-TYPE-UNSUPPORTED",      // 21
	"INVALID-CERT-AUTHORITY",     // 22
	"INVALID-HASH-INFORMATION",   // 23
	"AUTHENTICATION-FAILED",      // 24
	"INVALID-SIGNATURE",          // 25
	"ADDRESS-NOTIFICATION",       // 26
	"NOTIFY-SA-LIFETIME",         // 27
	"CERTIFICATE-UNAVAILABLE",    // 28
	"UNSUPPORTED-EXCHANGE-TYPE",  // 29
	"UNEQUAL-PAYLOAD-LENGTHS",    // 30
}

// NotifyNoProposalChosen is the notify type most commonly returned to a
// probe whose proposal the peer rejects.
const NotifyNoProposalChosen uint16 = 14

// checkpointNotifyType is the proprietary notify type used by Checkpoint
// Firewall-1 4.x and NG Base, carrying a printable status message.
const checkpointNotifyType uint16 = 9101
