// Package economy implements the cooldown-gated earning and banking actions.
// Domain rejections (cooldowns, insufficient funds, invalid references) leave
// the account untouched; only committed actions reach the ledger.
package economy

import (
	"errors"
	"math/rand"
	"time"

	"CoinArena/internal/cooldown"
	"CoinArena/internal/ledger"
	"CoinArena/internal/model"
)

// DailyReward is the fixed daily claim amount.
const DailyReward = 100

// PassiveDuration is how long passive mode shields a user from robbery.
const PassiveDuration = 2 * time.Hour

var (
	ErrNoJob            = errors.New("no current job, apply for one first")
	ErrUnknownJob       = errors.New("unknown job")
	ErrMissingEdu       = errors.New("missing required education")
	ErrUnknownProgram   = errors.New("unknown education program")
	ErrNotEnrolled      = errors.New("not enrolled in any program")
	ErrBankFull         = errors.New("bank capacity exceeded")
	ErrInsufficientBank = errors.New("insufficient bank balance")
	ErrPassiveTarget    = errors.New("target is in passive mode")
	ErrTargetTooPoor    = errors.New("target is too poor to rob")
	ErrSelfTarget       = errors.New("cannot target yourself")
	ErrPassiveActive    = errors.New("passive mode still active")
	ErrMissingItem      = errors.New("not enough of that item")
)

// Service runs gated actions against the ledger.
type Service struct {
	ledger *ledger.Ledger
	rng    *rand.Rand
	now    func() time.Time
}

// NewService creates the economy service. The random source drives work pay,
// robbery outcomes, and study progress.
func NewService(l *ledger.Ledger, rng *rand.Rand) *Service {
	return &Service{ledger: l, rng: rng, now: time.Now}
}

// Daily claims the fixed daily reward on a 24h gate.
func (s *Service) Daily(userID int64) (int64, error) {
	now := s.now()
	acct := s.ledger.Get(userID)
	if err := cooldown.Gate(acct, model.ActionDaily, now); err != nil {
		return 0, err
	}
	acct.Balance += DailyReward
	acct.SetLastAction(model.ActionDaily, now)
	if err := s.ledger.Update(acct); err != nil {
		return 0, err
	}
	return DailyReward, nil
}

// Work earns a uniform wage in the current job's pay band on a 1h gate.
func (s *Service) Work(userID int64) (JobInfo, int64, error) {
	now := s.now()
	acct := s.ledger.Get(userID)
	if acct.CurrentJob == "" {
		return JobInfo{}, 0, ErrNoJob
	}
	job, ok := Jobs[acct.CurrentJob]
	if !ok {
		return JobInfo{}, 0, ErrUnknownJob
	}
	if err := cooldown.Gate(acct, model.ActionWork, now); err != nil {
		return JobInfo{}, 0, err
	}
	pay := job.MinPay + s.rng.Int63n(job.MaxPay-job.MinPay+1)
	acct.Balance += pay
	acct.SetLastAction(model.ActionWork, now)
	if err := s.ledger.Update(acct); err != nil {
		return JobInfo{}, 0, err
	}
	return job, pay, nil
}

// RobResult reports one robbery attempt.
type RobResult struct {
	Success bool
	Amount  int64 // stolen on success, fine paid on failure
}

// Rob attempts to steal from another user on a 1h gate. 40% of attempts
// succeed; the rest fine the robber, capped at their wallet.
func (s *Service) Rob(robberID, victimID int64) (RobResult, error) {
	if robberID == victimID {
		return RobResult{}, ErrSelfTarget
	}
	now := s.now()
	robber := s.ledger.Get(robberID)
	victim := s.ledger.Get(victimID)

	if victim.Passive && now.Before(victim.PassiveUntil) {
		return RobResult{}, ErrPassiveTarget
	}
	if err := cooldown.Gate(robber, model.ActionRob, now); err != nil {
		return RobResult{}, err
	}
	if victim.Balance < 100 {
		return RobResult{}, ErrTargetTooPoor
	}

	var res RobResult
	if s.rng.Intn(100) < 40 {
		ceiling := victim.Balance
		if ceiling > 1000 {
			ceiling = 1000
		}
		amount := 100 + s.rng.Int63n(ceiling-100+1)
		robber.Balance += amount
		victim.Balance -= amount
		res = RobResult{Success: true, Amount: amount}
	} else {
		fine := 100 + s.rng.Int63n(400)
		if fine > robber.Balance {
			fine = robber.Balance
		}
		robber.Balance -= fine
		res = RobResult{Success: false, Amount: fine}
	}

	robber.SetLastAction(model.ActionRob, now)
	// Both sides commit in one write, so a failed save cannot leave the
	// stolen amount in two wallets.
	updates := []*model.Account{robber}
	if res.Success {
		updates = append(updates, victim)
	}
	if err := s.ledger.Update(updates...); err != nil {
		return res, err
	}
	return res, nil
}

// Fish draws one catch from the loot table on a 30m gate and adds it to the
// inventory. The catch is sold later through SellItem.
func (s *Service) Fish(userID int64) (CatchInfo, error) {
	now := s.now()
	acct := s.ledger.Get(userID)
	if err := cooldown.Gate(acct, model.ActionFish, now); err != nil {
		return CatchInfo{}, err
	}

	total := 0
	for _, c := range Catches {
		total += c.Weight
	}
	roll := s.rng.Intn(total)
	var caught CatchInfo
	for _, c := range Catches {
		if roll < c.Weight {
			caught = c
			break
		}
		roll -= c.Weight
	}

	acct.AddItem(caught.Item, 1)
	acct.SetLastAction(model.ActionFish, now)
	if err := s.ledger.Update(acct); err != nil {
		return caught, err
	}
	return caught, nil
}

// Give transfers money between wallets.
func (s *Service) Give(fromID, toID int64, amount int64) error {
	if fromID == toID {
		return ErrSelfTarget
	}
	return s.ledger.Transfer(fromID, toID, amount)
}

// Deposit moves money from wallet to bank on a 1m gate, respecting the bank
// capacity for the current bank level.
func (s *Service) Deposit(userID int64, amount int64) error {
	if amount <= 0 {
		return ledger.ErrInvalidAmount
	}
	now := s.now()
	acct := s.ledger.Get(userID)
	if err := cooldown.Gate(acct, model.ActionDeposit, now); err != nil {
		return err
	}
	if acct.Balance < amount {
		return ledger.ErrInsufficientFunds
	}
	if acct.BankBalance+amount > acct.MaxBankBalance() {
		return ErrBankFull
	}
	acct.Balance -= amount
	acct.BankBalance += amount
	acct.SetLastAction(model.ActionDeposit, now)
	return s.ledger.Update(acct)
}

// Withdraw moves money from bank to wallet on a 1m gate.
func (s *Service) Withdraw(userID int64, amount int64) error {
	if amount <= 0 {
		return ledger.ErrInvalidAmount
	}
	now := s.now()
	acct := s.ledger.Get(userID)
	if err := cooldown.Gate(acct, model.ActionWithdraw, now); err != nil {
		return err
	}
	if acct.BankBalance < amount {
		return ErrInsufficientBank
	}
	acct.BankBalance -= amount
	acct.Balance += amount
	acct.SetLastAction(model.ActionWithdraw, now)
	return s.ledger.Update(acct)
}

// UpgradeBank buys one bank level for level*5000, raising the capacity.
func (s *Service) UpgradeBank(userID int64) (newCap int64, cost int64, err error) {
	acct := s.ledger.Get(userID)
	cost = int64(acct.BankLevel) * 5000
	if acct.Balance < cost {
		return 0, cost, ledger.ErrInsufficientFunds
	}
	acct.Balance -= cost
	acct.BankLevel++
	if err := s.ledger.Update(acct); err != nil {
		return 0, cost, err
	}
	return acct.MaxBankBalance(), cost, nil
}

// TogglePassive enables 2h of robbery protection, or disables it once
// expired. Disabling early is rejected with the remaining wait.
func (s *Service) TogglePassive(userID int64) (enabled bool, until time.Time, err error) {
	now := s.now()
	acct := s.ledger.Get(userID)
	if acct.Passive {
		if now.Before(acct.PassiveUntil) {
			return true, acct.PassiveUntil, ErrPassiveActive
		}
		acct.Passive = false
		if err := s.ledger.Update(acct); err != nil {
			return false, time.Time{}, err
		}
		return false, time.Time{}, nil
	}
	acct.Passive = true
	acct.PassiveUntil = now.Add(PassiveDuration)
	if err := s.ledger.Update(acct); err != nil {
		return false, time.Time{}, err
	}
	return true, acct.PassiveUntil, nil
}

// EnrollResult reports one enrollment attempt.
type EnrollResult struct {
	Success bool
	Program EducationInfo
	Refund  int64 // half the tuition, returned on a failed enrollment
}

// Enroll pays tuition for an education program. Enrollment succeeds at the
// program's success rate; a failure refunds half the tuition.
func (s *Service) Enroll(userID int64, programKey string) (EnrollResult, error) {
	program, ok := Education[programKey]
	if !ok {
		return EnrollResult{}, ErrUnknownProgram
	}
	acct := s.ledger.Get(userID)
	if acct.Balance < program.Cost {
		return EnrollResult{}, ledger.ErrInsufficientFunds
	}
	acct.Balance -= program.Cost
	res := EnrollResult{Program: program}
	if s.rng.Intn(100) < program.SuccessRate {
		acct.Education = programKey
		acct.StudyProgress = 0
		res.Success = true
	} else {
		res.Refund = program.Cost / 2
		acct.Balance += res.Refund
	}
	if err := s.ledger.Update(acct); err != nil {
		return res, err
	}
	return res, nil
}

// Study advances the enrolled program by 15-25% on a 1h gate. Reaching 100%
// grants the credential item and clears the enrollment.
func (s *Service) Study(userID int64) (progress int, completed bool, err error) {
	now := s.now()
	acct := s.ledger.Get(userID)
	if acct.Education == "" {
		return 0, false, ErrNotEnrolled
	}
	if err := cooldown.Gate(acct, model.ActionStudy, now); err != nil {
		return 0, false, err
	}
	acct.StudyProgress += 15 + s.rng.Intn(11)
	acct.SetLastAction(model.ActionStudy, now)
	if acct.StudyProgress >= 100 {
		acct.AddItem(acct.Education, 1)
		acct.Education = ""
		acct.StudyProgress = 0
		completed = true
	}
	if err := s.ledger.Update(acct); err != nil {
		return acct.StudyProgress, completed, err
	}
	return acct.StudyProgress, completed, nil
}

// Apply takes a job, checking the required credential is in inventory.
func (s *Service) Apply(userID int64, jobKey string) (JobInfo, error) {
	job, ok := Jobs[jobKey]
	if !ok {
		return JobInfo{}, ErrUnknownJob
	}
	acct := s.ledger.Get(userID)
	if job.RequiredEdu != "" && acct.ItemCount(job.RequiredEdu) == 0 {
		return JobInfo{}, ErrMissingEdu
	}
	acct.CurrentJob = jobKey
	if err := s.ledger.Update(acct); err != nil {
		return JobInfo{}, err
	}
	return job, nil
}

// SellItem sells inventory items at their catalog value.
func (s *Service) SellItem(userID int64, item string, qty int) (int64, error) {
	if qty <= 0 {
		return 0, ledger.ErrInvalidAmount
	}
	acct := s.ledger.Get(userID)
	if acct.ItemCount(item) < qty {
		return 0, ErrMissingItem
	}
	value, ok := ItemValues[item]
	if !ok {
		value = DefaultItemValue
	}
	total := value * int64(qty)
	acct.AddItem(item, -qty)
	acct.Balance += total
	if err := s.ledger.Update(acct); err != nil {
		return 0, err
	}
	return total, nil
}
