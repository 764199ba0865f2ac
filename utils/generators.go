package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// OrderNumber อ่านง่ายสำหรับหน้าร้าน/ครัว อิงเวลาสร้าง
func GenerateOrderNumber(t time.Time) string {
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(9999))
	return fmt.Sprintf("ORD-%s-%04d", t.Format("20060102-150405"), randomNum.Int64())
}

func GenerateTransactionID() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999999))
	return fmt.Sprintf("txn_%d_%09d", timestamp, randomNum.Int64())
}

// client secret ของ mock provider: deterministic จาก intent id
// (retry แล้วได้ค่าเดิม ไม่ต้องเก็บ state ฝั่ง provider)
func MockClientSecret(intentID string) string {
	sum := sha256.Sum256([]byte("mock:" + intentID))
	return fmt.Sprintf("%s_secret_%s", intentID, hex.EncodeToString(sum[:8]))
}
