package steam

import "hash/crc32"

// AppID derives the shortcut application id Steam generates for a non-Steam
// game: CRC32 over exe path + display name with the high bit set, so the id
// never collides with catalog app ids. The same inputs always produce the
// same id, which is what makes re-adding a game an update instead of a
// duplicate.
func AppID(exe, name string) uint32 {
	return crc32.ChecksumIEEE([]byte(exe+name)) | 0x80000000
}

// LegacyGridID derives the 64-bit id old Steam clients (and big-picture
// screenshots) used to name custom grid images: the shortcut id shifted into
// the high word with 0x02000000 in the low word. Kept as a fixed external
// contract for consumers of the historical naming scheme.
func LegacyGridID(exe, name string) uint64 {
	return uint64(AppID(exe, name))<<32 | 0x02000000
}
