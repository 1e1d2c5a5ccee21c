package verify

// IsZero reports whether chunk is non-empty and every byte of it is zero.
func IsZero(chunk []byte) bool {
  if len(chunk) == 0 {
    return false
  }

  // 8 bytes at a time, then the tail
  i := 0
  for ; i+8 <= len(chunk); i += 8 {
    if chunk[i]|chunk[i+1]|chunk[i+2]|chunk[i+3]|chunk[i+4]|chunk[i+5]|chunk[i+6]|chunk[i+7] != 0 {
      return false
    }
  }
  for ; i < len(chunk); i++ {
    if chunk[i] != 0 {
      return false
    }
  }
  return true
}
