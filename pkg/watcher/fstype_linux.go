//go:build linux

package watcher

import "syscall"

// statfs f_type magic numbers, from linux/magic.h.
const (
	nfsSuperMagic   = 0x6969
	smbSuperMagic   = 0x517b
	cifsMagicNumber = 0xff534d42
	smb2MagicNumber = 0xfe534d42
	fuseSuperMagic  = 0x65735546
)

func detectFilesystemType(path string) FilesystemType {
	var st syscall.Statfs_t
	if err := syscall.Statfs(path, &st); err != nil {
		return FSTypeUnknown
	}
	switch uint32(st.Type) {
	case nfsSuperMagic:
		return FSTypeNFS
	case smbSuperMagic, cifsMagicNumber, smb2MagicNumber:
		return FSTypeSMB
	case fuseSuperMagic:
		// sshfs is FUSE-backed; the magic number cannot tell them apart, and
		// both get polling anyway.
		return FSTypeFUSE
	default:
		return FSTypeLocal
	}
}
